// Package digest maps algorithm identifiers to incremental hash
// constructors. Every call to New returns an independent accumulator,
// so callers hashing in parallel never share state.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedAlgorithm is returned for names the registry does not know.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// Algorithm describes one registered hash function.
type Algorithm struct {
	Name string
	Size int // digest size in bytes
	New  func() hash.Hash
}

var algorithms = map[string]Algorithm{}

func register(name string, size int, fn func() hash.Hash) {
	algorithms[name] = Algorithm{Name: name, Size: size, New: fn}
}

func init() {
	register("md4", md4.Size, md4.New)
	register("md5", md5.Size, md5.New)
	register("sha1", sha1.Size, sha1.New)
	register("sha224", sha256.Size224, sha256.New224)
	register("sha256", sha256.Size, sha256.New)
	register("sha384", sha512.Size384, sha512.New384)
	register("sha512", sha512.Size, sha512.New)
	register("sha512-224", sha512.Size224, sha512.New512_224)
	register("sha512-256", sha512.Size256, sha512.New512_256)
	register("sha3-224", 28, sha3.New224)
	register("sha3-256", 32, sha3.New256)
	register("sha3-384", 48, sha3.New384)
	register("sha3-512", 64, sha3.New512)
	register("blake2b-256", blake2b.Size256, mustBlake2b(blake2b.New256))
	register("blake2b-512", blake2b.Size, mustBlake2b(blake2b.New512))
	register("blake3", 32, func() hash.Hash { return blake3.New() })
	register("ripemd160", ripemd160.Size, ripemd160.New)
}

// blake2b constructors only fail for oversized keys; we never pass one.
func mustBlake2b(fn func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}

// Normalize returns the canonical (lowercase, trimmed) form of name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds an algorithm by name, case-insensitively.
func Lookup(name string) (Algorithm, error) {
	alg, ok := algorithms[Normalize(name)]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

// New returns a fresh accumulator for the named algorithm.
func New(name string) (hash.Hash, error) {
	alg, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return alg.New(), nil
}

// Supported reports whether name is registered.
func Supported(name string) bool {
	_, ok := algorithms[Normalize(name)]
	return ok
}

// Names returns all registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package service

import (
	"context"
	"encoding/hex"
	"errors"
	"io"

	"go.uber.org/zap"

	"file-hash-service/pkg/digest"
	apperrors "file-hash-service/pkg/errors"
	"file-hash-service/pkg/storage"
)

// DefaultChunkSize is the read buffer used when none is configured
const DefaultChunkSize = 64 * 1024

// HashService computes digests by streaming content from a Source.
// It holds no per-request state and is safe for concurrent use.
type HashService struct {
	source    storage.Source
	chunkSize int
	logger    *zap.Logger
}

func NewHashService(src storage.Source, chunkSize int, logger *zap.Logger) *HashService {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &HashService{source: src, chunkSize: chunkSize, logger: logger}
}

// Compute streams the file at path through a fresh accumulator for
// algorithm and returns the lowercase hex digest. Inputs are expected to be
// validated already. Open and read failures are returned as *errors.IOError.
func (s *HashService) Compute(ctx context.Context, algorithm, path string) (string, error) {
	h, err := digest.New(algorithm)
	if err != nil {
		return "", err
	}

	reader, err := s.source.Open(ctx, path)
	if err != nil {
		return "", apperrors.NewIOError("open", path, err)
	}
	defer reader.Close()

	buf := make([]byte, s.chunkSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return "", apperrors.NewIOError("read", path, err)
		}

		n, rerr := reader.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			total += int64(n)
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return "", apperrors.NewIOError("read", path, rerr)
		}
	}

	sum := hex.EncodeToString(h.Sum(nil))

	s.logger.Debug("Digest computed",
		zap.String("algorithm", algorithm),
		zap.String("path", path),
		zap.Int64("bytes", total))

	return sum, nil
}

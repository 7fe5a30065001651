package validator

import (
	"fmt"
	"regexp"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"file-hash-service/internal/model"
	"file-hash-service/pkg/digest"
	"file-hash-service/pkg/errors"
)

// Path limits
const (
	MinPathLen = 1
	MaxPathLen = 256
)

// DefaultAlgorithms is the allow-list used when none is configured
var DefaultAlgorithms = []string{"md4", "sha1"}

// PathPattern requires at least one separator with a non-empty head and
// a non-empty last segment. It is a shape check only: absolute paths and
// ".." segments are accepted.
var PathPattern = regexp.MustCompile(`^(.+)/([^/]+)$`)

// Rules per field. Algorithm is checked before Path and the first failure wins.
var (
	algorithmRules = "required,hashalg"
	pathRules      = fmt.Sprintf("required,min=%d,max=%d,pathshape", MinPathLen, MaxPathLen)
)

// ValidationResult is the outcome of validating a hash request
type ValidationResult struct {
	Valid        bool
	ErrorMessage string
	Err          *errors.ValidationError
}

// HashValidator checks hash requests against an algorithm allow-list.
// It is safe for concurrent use.
type HashValidator struct {
	allowed  map[string]struct{}
	names    []string
	validate *playground.Validate
}

// NewHashValidator builds a validator for the given allow-list. Every
// name must be known to the digest registry.
func NewHashValidator(algorithms []string) (*HashValidator, error) {
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("algorithm allow-list is empty")
	}

	v := &HashValidator{allowed: make(map[string]struct{}, len(algorithms))}
	for _, name := range algorithms {
		name = digest.Normalize(name)
		if !digest.Supported(name) {
			return nil, fmt.Errorf("allow-listed algorithm %q: %w", name, digest.ErrUnsupportedAlgorithm)
		}
		if _, dup := v.allowed[name]; dup {
			continue
		}
		v.allowed[name] = struct{}{}
		v.names = append(v.names, name)
	}

	v.validate = playground.New()
	if err := v.validate.RegisterValidation("hashalg", v.isAllowedAlgorithm); err != nil {
		return nil, err
	}
	if err := v.validate.RegisterValidation("pathshape", isPathShaped); err != nil {
		return nil, err
	}
	return v, nil
}

// Algorithms returns the allow-list in configured order
func (v *HashValidator) Algorithms() []string {
	return append([]string(nil), v.names...)
}

// Allowed reports whether algorithm is on the allow-list. Matching is exact
// and case-insensitive.
func (v *HashValidator) Allowed(algorithm string) bool {
	_, ok := v.allowed[strings.ToLower(algorithm)]
	return ok
}

// Validate checks algorithm and path without touching the filesystem
func (v *HashValidator) Validate(algorithm, path string) ValidationResult {
	if err := v.validate.Var(algorithm, algorithmRules); err != nil {
		return invalid(v.translate("Algorithm", err))
	}
	if err := v.validate.Var(path, pathRules); err != nil {
		return invalid(v.translate("Path", err))
	}
	return ValidationResult{Valid: true}
}

// ValidateRequest validates a bound request; a nil request is invalid.
func (v *HashValidator) ValidateRequest(req *model.HashRequest) ValidationResult {
	if req == nil {
		return invalid(errors.NewValidationError("", "request body is required"))
	}
	return v.Validate(req.Algorithm, req.Path)
}

func invalid(verr *errors.ValidationError) ValidationResult {
	return ValidationResult{Valid: false, ErrorMessage: verr.Message, Err: verr}
}

func (v *HashValidator) isAllowedAlgorithm(fl playground.FieldLevel) bool {
	return v.Allowed(fl.Field().String())
}

func isPathShaped(fl playground.FieldLevel) bool {
	return PathPattern.MatchString(fl.Field().String())
}

func (v *HashValidator) translate(field string, err error) *errors.ValidationError {
	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return errors.NewValidationError(field, err.Error())
	}

	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%q is not allowed to be empty", field)
	case "hashalg":
		msg = fmt.Sprintf("%q must be one of [%s]", field, strings.Join(v.names, ", "))
	case "min":
		msg = fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "pathshape":
		msg = fmt.Sprintf("%q with value %q fails to match the required pattern: %s", field, fe.Value(), PathPattern)
	default:
		msg = fmt.Sprintf("%q failed on the %q rule", field, fe.Tag())
	}
	return errors.NewValidationError(field, msg)
}

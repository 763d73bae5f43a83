package converter

import "errors"

// Error types for the converter package. Every error returned by the
// pipeline wraps exactly one of these, so callers can discriminate the
// failure class with errors.Is instead of matching message text.
var (
	// ErrInvalidSyntax indicates the input could not be decoded as YAML
	ErrInvalidSyntax = errors.New("invalid YAML format")
	// ErrNotMapping indicates the decoded document is not a mapping
	ErrNotMapping = errors.New("invalid YAML")
	// ErrSchemaValidation indicates the mapping fails the resource schema
	ErrSchemaValidation = errors.New("schema validation failed")
	// ErrIO indicates a file read or write failure
	ErrIO = errors.New("io error")
	// ErrEncoding indicates the input bytes are not valid UTF-8
	ErrEncoding = errors.New("encoding error")
)

// classified holds every error class the pipeline is allowed to surface
var classified = []error{
	ErrInvalidSyntax,
	ErrNotMapping,
	ErrSchemaValidation,
	ErrIO,
	ErrEncoding,
}

// IsConverterError reports whether err belongs to the converter's closed
// set of error classes. Anything else is a defect, not a conversion failure.
func IsConverterError(err error) bool {
	for _, target := range classified {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

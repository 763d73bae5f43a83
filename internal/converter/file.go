package converter

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/alevsk/k8s-converter/internal/logger"
)

// ReadManifestFile reads a YAML manifest from disk as UTF-8 text.
// Read failures map to ErrIO, non-UTF-8 content to ErrEncoding.
func ReadManifestFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file must be UTF-8 encoded", ErrEncoding)
	}
	return string(data), nil
}

// ConvertFile reads a manifest file and runs it through the conversion
// pipeline.
func ConvertFile(path string) (map[string]interface{}, error) {
	content, err := ReadManifestFile(path)
	if err != nil {
		return nil, err
	}
	return Convert(content)
}

// WriteJSONFile serializes a converted manifest as JSON and writes it to
// path, creating or overwriting the file. With pretty set the output uses
// 2-space indentation, otherwise it is minified to a single line.
func WriteJSONFile(resource map[string]interface{}, path string, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(resource, "", "  ")
	} else {
		data, err = json.Marshal(resource)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to serialize JSON: %v", ErrIO, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	logger.Debug().Msgf("wrote %s", path)
	return nil
}

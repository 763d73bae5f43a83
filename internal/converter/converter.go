// Package converter implements the YAML to JSON conversion pipeline for
// Kubernetes manifests: decode, structural check, schema validation and
// JSON serialization.
package converter

import (
	"fmt"

	"github.com/alevsk/k8s-converter/internal/logger"
	yaml "gopkg.in/yaml.v3"
)

// Convert parses a Kubernetes YAML manifest and returns it as a generic
// mapping ready for JSON serialization. The mapping is returned unchanged:
// fields outside the minimal resource schema pass through as-is.
//
// Returns one of the classified converter errors:
// - ErrInvalidSyntax if the YAML cannot be decoded
// - ErrNotMapping if the document is empty or not a mapping
// - ErrSchemaValidation if required resource fields are missing or mistyped
func Convert(yamlContent string) (map[string]interface{}, error) {
	logger.Debug().Msg("parsing YAML content")

	var doc interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}

	resource, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: must be a mapping", ErrNotMapping)
	}

	logger.Debug().Msg("validating against Kubernetes resource schema")
	if err := validateResource(resource); err != nil {
		return nil, err
	}

	return resource, nil
}

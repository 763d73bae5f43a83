package converter

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// k8sResourceSchema is the minimal Kubernetes resource shape every manifest
// must satisfy. Only the presence and primitive type of the top-level fields
// are constrained; unknown fields pass through untouched.
const k8sResourceSchema = `{
	"type": "object",
	"required": ["apiVersion", "kind", "metadata"],
	"properties": {
		"apiVersion": {"type": "string"},
		"kind": {"type": "string"},
		"metadata": {
			"type": "object",
			"properties": {
				"name": {"type": "string"}
			}
		}
	}
}`

var resourceSchema = jsonschema.MustCompileString("k8s-resource.schema.json", k8sResourceSchema)

// validateResource checks a decoded manifest against the minimal resource
// schema. The mapping is round-tripped through encoding/json first so the
// validator sees canonical JSON types regardless of what the YAML decoder
// produced.
func validateResource(resource map[string]interface{}) error {
	raw, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("%w: manifest is not JSON serializable: %v", ErrSchemaValidation, err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if err := resourceSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	return nil
}

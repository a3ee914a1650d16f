package topology

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaSource string

var documentSchema = jsonschema.MustCompileString("topology.schema.json", schemaSource)

// Validate checks the rendered document against the compose subset airlocal
// writes, and that every dependency names a declared service.
func Validate(doc *Document) error {
	out, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	var data interface{}
	if err := yaml.Unmarshal(out, &data); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	// Round trip through JSON so the validator sees JSON types only.
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to convert document: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(jsonData, &generic); err != nil {
		return fmt.Errorf("failed to convert document: %w", err)
	}
	if err := documentSchema.Validate(generic); err != nil {
		return fmt.Errorf("invalid compose document: %w", err)
	}

	for _, name := range doc.ServiceNames() {
		for _, dep := range doc.Service(name).DependsOn {
			if doc.Service(dep) == nil {
				return fmt.Errorf("invalid compose document: service %s depends on undeclared service %s", name, dep)
			}
		}
	}
	return nil
}

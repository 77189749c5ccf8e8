package template

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// characterSchemaPath is the JSON Schema for hanzi-writer character files,
// relative to the repository root.
const characterSchemaPath = "schemas/character.schema.json"

// resolveSchemaPath tries common path resolutions so the schema is found
// whether the caller runs from the repo root or a package directory (tests).
// Returns empty string if none exists.
func resolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}
	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}
	return ""
}

// validateCharacterData checks raw character JSON against the schema. When
// the schema file cannot be located the check is skipped; the parser still
// enforces the structural requirements it depends on.
func validateCharacterData(data []byte) error {
	schemaPath := resolveSchemaPath(characterSchemaPath)
	if schemaPath == "" {
		return nil
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return fmt.Errorf("schema violation at %s: %s", first.Field(), first.Description())
	}
	return nil
}

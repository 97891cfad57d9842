// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"cardgen/internal/models"
)

const (
	TitleMaxLength       = 200
	DescriptionMinLength = 500
	DescriptionMaxLength = 800
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ProductCardSchema describes the intended shape of generated copy. Lengths
// are counted in runes.
var ProductCardSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"title", "description"},
	"properties": map[string]interface{}{
		"title": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"maxLength": TitleMaxLength,
		},
		"description": map[string]interface{}{
			"type":      "string",
			"minLength": DescriptionMinLength,
			"maxLength": DescriptionMaxLength,
		},
	},
}

var cardSchema = mustCompile(ProductCardSchema)

func mustCompile(schema map[string]interface{}) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return s
}

// ValidateCard checks card against ProductCardSchema. The result is advisory:
// generated copy outside the bounds is still returned to callers.
func ValidateCard(card models.ProductCard) *ValidationResult {
	result, err := cardSchema.Validate(gojsonschema.NewGoLoader(card))
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "SCHEMA_ERROR"}},
		}
	}
	return toResult(result)
}

func toResult(result *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out
}

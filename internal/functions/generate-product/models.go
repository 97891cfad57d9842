// internal/functions/generate-product/models.go
package generateproduct

import "errors"

const FunctionName = "generate-product"

var (
	// ErrNoChoices is returned when the generation service answers without
	// any completion choice.
	ErrNoChoices = errors.New("text generation returned no choices")
)

// Result is the outcome of a successful generation, before rendering.
type Result struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Fallbacks   []string `json:"-"`
}

// internal/models/product.go
package models

// ProductPayload is the inbound generation request. Every field is optional on
// the wire; accessors default absent values to "".
type ProductPayload struct {
	ProductName     *string `json:"productName"`
	ProductCategory *string `json:"productCategory"`
	ProductFeatures *string `json:"productFeatures"`
}

func (p ProductPayload) Name() string     { return deref(p.ProductName) }
func (p ProductPayload) Category() string { return deref(p.ProductCategory) }
func (p ProductPayload) Features() string { return deref(p.ProductFeatures) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ProductCard is the parsed marketplace copy returned to the caller.
type ProductCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

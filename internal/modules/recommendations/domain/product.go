// Package domain contains the types exchanged with the stock management app
// and the order event stream.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProductID is an opaque product identifier. It keeps the raw JSON token
// (number or string) so identifiers round-trip unchanged.
type ProductID string

// NewProductID builds an identifier from its path form. Numeric values are
// kept as JSON numbers, anything else becomes a JSON string.
func NewProductID(s string) ProductID {
	if s != "" && (s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) && json.Valid([]byte(s)) {
		return ProductID(s)
	}
	raw, _ := json.Marshal(s)
	return ProductID(raw)
}

// IsZero reports whether the identifier was absent from the payload.
func (id ProductID) IsZero() bool {
	return id == ""
}

// String returns the identifier as used in invocation paths.
func (id ProductID) String() string {
	if len(id) > 0 && id[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(id), &s); err == nil {
			return s
		}
	}
	return string(id)
}

// MarshalJSON emits the original token.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

// UnmarshalJSON keeps the raw token. A JSON null is kept as a present value.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty product id")
	}
	switch data[0] {
	case '{', '[':
		return fmt.Errorf("product id must be a number or string, got %s", data)
	}
	*id = ProductID(data)
	return nil
}

// Product is a catalog item as returned by the stock management app.
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Quantity    int       `json:"quantity"`
	Tags        []string  `json:"tags"`
}

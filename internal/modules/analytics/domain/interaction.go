// Package domain contains the domain models for the analytics module.
package domain

import (
	"encoding/json"
	"time"
)

// Interaction is a client-reported user action on a product. Fields are
// kept as raw JSON: only their presence is checked, never their content.
type Interaction struct {
	ID         string          `json:"id"`
	ProductID  json.RawMessage `json:"productId"`
	Timestamp  json.RawMessage `json:"timestamp"`
	Type       json.RawMessage `json:"type"`
	Details    json.RawMessage `json:"details"`
	ReceivedAt time.Time       `json:"receivedAt"`
}

// requiredFields lists the payload keys an interaction must carry.
var requiredFields = []string{"productId", "timestamp", "type", "details"}

// MissingFields returns the names of required fields absent from the payload.
func (i *Interaction) MissingFields() []string {
	values := map[string]json.RawMessage{
		"productId": i.ProductID,
		"timestamp": i.Timestamp,
		"type":      i.Type,
		"details":   i.Details,
	}

	var missing []string
	for _, name := range requiredFields {
		if len(values[name]) == 0 {
			missing = append(missing, name)
		}
	}
	return missing
}

package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{
			name:    "all present",
			payload: `{"productId":1,"timestamp":"2024-01-01T00:00:00Z","type":"view","details":{"source":"carousel"}}`,
			want:    nil,
		},
		{
			name:    "values are not validated",
			payload: `{"productId":"","timestamp":12,"type":"","details":null}`,
			want:    nil,
		},
		{
			name:    "missing details",
			payload: `{"productId":1,"timestamp":"t","type":"view"}`,
			want:    []string{"details"},
		},
		{
			name:    "empty payload",
			payload: `{}`,
			want:    []string{"productId", "timestamp", "type", "details"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i Interaction
			if err := json.Unmarshal([]byte(tt.payload), &i); err != nil {
				t.Fatalf("Unmarshal() unexpected error = %v", err)
			}
			if got := i.MissingFields(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

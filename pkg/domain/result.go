package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawResult is a single engine record. Type, Module and Data are the fields
// the application interprets; Raw keeps the record exactly as the engine sent
// it so nothing is lost when it is persisted.
type RawResult struct {
	Type   string
	Module string
	Data   string
	Raw    json.RawMessage
}

type rawResultFields struct {
	Type   string          `json:"type"`
	Module string          `json:"module,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// MarshalJSON emits the original record when it is known.
func (r RawResult) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}

	data, err := json.Marshal(r.Data)
	if err != nil {
		return nil, fmt.Errorf("could not marshal data: %w", err)
	}

	return json.Marshal(rawResultFields{Type: r.Type, Module: r.Module, Data: data})
}

// UnmarshalJSON keeps the full record in Raw and extracts the interpreted
// fields. Non-string data values are kept in their JSON text form.
func (r *RawResult) UnmarshalJSON(b []byte) error {
	var f rawResultFields
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("could not unmarshal raw result: %w", err)
	}

	*r = RawResult{
		Type:   f.Type,
		Module: f.Module,
		Data:   DataString(f.Data),
		Raw:    bytes.Clone(b),
	}

	return nil
}

// DataString converts a JSON value into the string form used for matching.
func DataString(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}

	return string(v)
}

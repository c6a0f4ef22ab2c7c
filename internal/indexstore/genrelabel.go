package indexstore

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders a GenreLabel as the ["label", confidence] pair the
// external contract specifies, rather than a JSON object.
func (g GenreLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{g.Label, g.Confidence})
}

// UnmarshalJSON parses a GenreLabel from an ["label", confidence] pair.
func (g *GenreLabel) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("genre label: expected [label, confidence] pair: %w", err)
	}
	if err := json.Unmarshal(pair[0], &g.Label); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[1], &g.Confidence); err != nil {
		return err
	}
	return nil
}

package editor

import (
	"encoding/json"
	"sort"
)

// Selection is the set of seat ids picked for a batch edit.
type Selection map[string]struct{}

// Toggle adds id when absent and removes it when present.  It reports
// whether id is selected afterwards.
func (s Selection) Toggle(id string) bool {
	if _, ok := s[id]; ok {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clear empties the selection.
func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// IDs returns the selected ids in a stable order.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the selection as a sorted array.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes an array of ids.
func (s *Selection) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	out := make(Selection, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	*s = out
	return nil
}

package settings

import (
	"encoding/json"
	"fmt"

	"github.com/miquelnez/extman/internal/branding"
)

// EnabledSet is the ordered list of enabled extension ids. Membership order
// carries no meaning but is preserved stably across read-modify-write cycles
// so repeated saves don't produce spurious diffs. Ids never repeat.
type EnabledSet []string

// Has reports whether id is in the set.
func (s EnabledSet) Has(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns the set with id appended. Adding a present id is a no-op.
func (s EnabledSet) Add(id string) EnabledSet {
	if s.Has(id) {
		return s
	}
	return append(s, id)
}

// Remove returns the set without id, preserving the order of the rest.
func (s EnabledSet) Remove(id string) EnabledSet {
	out := s[:0:0]
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// LoadEnabled reads the enabled-extension list from the store. A missing or
// empty key yields an empty set.
func LoadEnabled(st Store) (EnabledSet, error) {
	raw, ok := st.Get(branding.EnabledKey())
	if !ok || raw == "" {
		return EnabledSet{}, nil
	}

	var set EnabledSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("parsing %s setting: %w", branding.EnabledKey(), err)
	}
	return set, nil
}

// SaveEnabled writes the enabled-extension list to the store.
func SaveEnabled(st Store, set EnabledSet) error {
	if set == nil {
		set = EnabledSet{}
	}
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encoding %s setting: %w", branding.EnabledKey(), err)
	}
	return st.Set(branding.EnabledKey(), string(raw))
}

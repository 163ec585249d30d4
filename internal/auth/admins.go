// Package auth gates administrative actions behind the configured
// allow-list of chat identities.
package auth

import "sort"

// AdminSet is the allow-list of administrator chat ids. Every admin-only
// action must pass through IsAdmin; identity arrives from the transport
// and is never self-asserted.
type AdminSet struct {
	ids map[int64]struct{}
}

// NewAdminSet builds the allow-list from configured ids.
func NewAdminSet(ids []int64) *AdminSet {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &AdminSet{ids: set}
}

// IsAdmin reports allow-list membership.
func (s *AdminSet) IsAdmin(chatID int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[chatID]
	return ok
}

// IDs returns the allow-list in stable order, for broadcasts.
func (s *AdminSet) IDs() []int64 {
	if s == nil {
		return nil
	}
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

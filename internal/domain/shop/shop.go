// Package shop defines the shop listing domain: the optional city/category
// filter, the request query derived from it, and the loading -> settled
// fetch state that the rendering layer consumes.
package shop

import "encoding/json"

// Shop is a single backend shop entity kept as its raw JSON object. The
// domain treats it as opaque; only the rendering layer reads display fields
// out of it.
type Shop json.RawMessage

// MarshalJSON writes the raw object back unchanged.
func (s Shop) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

// UnmarshalJSON stores a copy of the raw object.
func (s *Shop) UnmarshalJSON(b []byte) error {
	*s = append((*s)[:0], b...)
	return nil
}

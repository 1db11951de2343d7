package shop

// Filter holds the two optional criteria narrowing a shop listing.
// An empty string means the dimension is absent. Values are not validated
// here; any non-empty value is forwarded to the backend.
type Filter struct {
	City     string
	Category string
}

// HasCity reports whether a city was supplied.
func (f Filter) HasCity() bool { return f.City != "" }

// HasCategory reports whether a category was supplied.
func (f Filter) HasCategory() bool { return f.Category != "" }

// IsZero reports whether neither criterion is present.
func (f Filter) IsZero() bool { return !f.HasCity() && !f.HasCategory() }

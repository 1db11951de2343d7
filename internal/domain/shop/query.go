package shop

import (
	"net/url"
	"strings"
)

// DefaultEndpoint is the backend path serving shop listings.
const DefaultEndpoint = "/api/drinks/"

// Query parameter names understood by the backend.
const (
	paramSort     = "sort"
	paramCategory = "type"
	paramCity     = "city"

	sortByName = "name"
)

// Variant identifies which of the four mutually exclusive request shapes a
// filter produces.
type Variant int

const (
	// VariantAll lists every shop, sorted by name.
	VariantAll Variant = iota
	// VariantCategory filters by type only.
	VariantCategory
	// VariantCity filters by city only.
	VariantCity
	// VariantCityAndCategory filters by both city and type.
	VariantCityAndCategory
)

// String implements fmt.Stringer. The values double as metric attributes.
func (v Variant) String() string {
	switch v {
	case VariantCityAndCategory:
		return "city_and_category"
	case VariantCity:
		return "city"
	case VariantCategory:
		return "category"
	default:
		return "all"
	}
}

// Classify returns the request variant for f. Precedence is
// city+category, then city, then category, then all.
func Classify(f Filter) Variant {
	switch {
	case f.HasCity() && f.HasCategory():
		return VariantCityAndCategory
	case f.HasCity():
		return VariantCity
	case f.HasCategory():
		return VariantCategory
	default:
		return VariantAll
	}
}

// BuildQuery returns the variant for f and its encoded query string
// (without the leading "?"). Parameters always appear in the order
// sort, type, city and every value is query-escaped.
func BuildQuery(f Filter) (Variant, string) {
	v := Classify(f)

	var b strings.Builder
	writeParam(&b, paramSort, sortByName)

	switch v {
	case VariantCityAndCategory:
		writeParam(&b, paramCategory, f.Category)
		writeParam(&b, paramCity, f.City)
	case VariantCity:
		writeParam(&b, paramCity, f.City)
	case VariantCategory:
		writeParam(&b, paramCategory, f.Category)
	case VariantAll:
	}

	return v, b.String()
}

// RequestPath joins endpoint and the query for f, e.g.
// "/api/drinks/?sort=name&type=espresso&city=Seattle". An empty endpoint
// falls back to DefaultEndpoint.
func RequestPath(endpoint string, f Filter) string {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	_, q := BuildQuery(f)
	return endpoint + "?" + q
}

func writeParam(b *strings.Builder, key, value string) {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}

package shop_test

import (
	"testing"

	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
)

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		filter      shop.Filter
		wantVariant shop.Variant
		wantQuery   string
	}{
		{
			name:        "city and category",
			filter:      shop.Filter{City: "Seattle", Category: "espresso"},
			wantVariant: shop.VariantCityAndCategory,
			wantQuery:   "sort=name&type=espresso&city=Seattle",
		},
		{
			name:        "city only",
			filter:      shop.Filter{City: "Seattle"},
			wantVariant: shop.VariantCity,
			wantQuery:   "sort=name&city=Seattle",
		},
		{
			name:        "category only",
			filter:      shop.Filter{Category: "tea"},
			wantVariant: shop.VariantCategory,
			wantQuery:   "sort=name&type=tea",
		},
		{
			name:        "neither",
			filter:      shop.Filter{},
			wantVariant: shop.VariantAll,
			wantQuery:   "sort=name",
		},
		{
			name:        "values are escaped",
			filter:      shop.Filter{City: "New York", Category: "bubble&tea"},
			wantVariant: shop.VariantCityAndCategory,
			wantQuery:   "sort=name&type=bubble%26tea&city=New+York",
		},
		{
			name:        "reserved characters cannot inject parameters",
			filter:      shop.Filter{City: "x&sort=price#frag"},
			wantVariant: shop.VariantCity,
			wantQuery:   "sort=name&city=x%26sort%3Dprice%23frag",
		},
		{
			name:        "non-ascii city",
			filter:      shop.Filter{City: "Zürich"},
			wantVariant: shop.VariantCity,
			wantQuery:   "sort=name&city=Z%C3%BCrich",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			variant, query := shop.BuildQuery(tt.filter)
			if variant != tt.wantVariant {
				t.Errorf("variant = %v, want %v", variant, tt.wantVariant)
			}
			if query != tt.wantQuery {
				t.Errorf("query = %q, want %q", query, tt.wantQuery)
			}
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	t.Parallel()

	values := []string{"", "x"}
	seen := map[shop.Variant]int{}

	for _, city := range values {
		for _, category := range values {
			f := shop.Filter{City: city, Category: category}
			v := shop.Classify(f)
			seen[v]++

			switch {
			case city != "" && category != "":
				if v != shop.VariantCityAndCategory {
					t.Errorf("Classify(%+v) = %v, want city_and_category", f, v)
				}
			case city != "":
				if v != shop.VariantCity {
					t.Errorf("Classify(%+v) = %v, want city", f, v)
				}
			case category != "":
				if v != shop.VariantCategory {
					t.Errorf("Classify(%+v) = %v, want category", f, v)
				}
			default:
				if v != shop.VariantAll {
					t.Errorf("Classify(%+v) = %v, want all", f, v)
				}
			}
		}
	}

	if len(seen) != 4 {
		t.Errorf("distinct variants = %d, want 4", len(seen))
	}
}

func TestRequestPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		filter   shop.Filter
		want     string
	}{
		{
			name:   "seattle espresso",
			filter: shop.Filter{City: "Seattle", Category: "espresso"},
			want:   "/api/drinks/?sort=name&type=espresso&city=Seattle",
		},
		{
			name: "no filter",
			want: "/api/drinks/?sort=name",
		},
		{
			name:     "custom endpoint",
			endpoint: "/v2/shops/",
			filter:   shop.Filter{Category: "espresso"},
			want:     "/v2/shops/?sort=name&type=espresso",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := shop.RequestPath(tt.endpoint, tt.filter); got != tt.want {
				t.Errorf("RequestPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariant_String(t *testing.T) {
	t.Parallel()

	tests := map[shop.Variant]string{
		shop.VariantAll:             "all",
		shop.VariantCategory:        "category",
		shop.VariantCity:            "city",
		shop.VariantCityAndCategory: "city_and_category",
	}
	for v, want := range tests {
		if got := v.String(); got != want {
			t.Errorf("Variant(%d).String() = %q, want %q", int(v), got, want)
		}
	}
}

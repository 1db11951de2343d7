// Package view renders the shop listing page: a navigation bar, either a
// loading placeholder or a grid of shop cards, and a footer.
package view

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/jsamuelsen11/storefront-shops/internal/domain"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// UnnamedShop labels a card whose shop has no name.
	UnnamedShop = "Unnamed shop"

	defaultBrand   = "Storefront"
	defaultRefresh = time.Second
)

// Page is what a single render needs.
type Page struct {
	// ViewID is the mounted view a loading page reloads.
	ViewID string
	Filter shop.Filter
	State  shop.FetchState
	Policy shop.ErrorPolicy
	// Color is the background of the content area; empty leaves it unset.
	Color string
}

// Card holds the display fields read from a shop.
type Card struct {
	Name     string
	City     string
	Category string
	Address  string
}

// Renderer executes the embedded page templates. It is safe for
// concurrent use.
type Renderer struct {
	tmpl    *template.Template
	brand   string
	refresh time.Duration
	now     func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBrand sets the name shown in the navbar and footer.
func WithBrand(brand string) Option {
	return func(r *Renderer) {
		if brand != "" {
			r.brand = brand
		}
	}
}

// WithRefresh sets how soon a loading page asks the browser to reload.
func WithRefresh(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.refresh = d
		}
	}
}

// New parses the embedded templates.
func New(opts ...Option) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}

	r := &Renderer{
		tmpl:    tmpl,
		brand:   defaultBrand,
		refresh: defaultRefresh,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type pageData struct {
	Title          string
	Brand          string
	Heading        string
	Color          string
	Year           int
	Loading        bool
	RefreshSeconds int
	RefreshURL     string
	ShowError      bool
	ErrorMessage   string
	Cards          []Card
}

// Render writes the page for p to w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	policy := p.Policy
	if !policy.IsValid() {
		policy = shop.ErrorPolicyInline
	}

	data := pageData{
		Title:          r.brand + " | Shops",
		Brand:          r.brand,
		Heading:        Heading(p.Filter),
		Color:          p.Color,
		Year:           r.now().Year(),
		Loading:        p.State.IsLoading,
		RefreshSeconds: int(math.Ceil(r.refresh.Seconds())),
		RefreshURL:     RefreshURL(p),
		ShowError:      policy.ShowError(p.State),
		Cards:          Cards(p.State.Results),
	}
	if data.ShowError {
		data.ErrorMessage = "We couldn't load shops right now (" + domain.ErrFetchFailed.Error() + "). Please try again."
	}

	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("rendering shops page: %w", err)
	}
	return nil
}

// RefreshURL is the relative URL a loading page reloads: its own filter and
// color plus the view to keep observing.
func RefreshURL(p Page) string {
	q := url.Values{}
	for key, v := range map[string]string{
		"city":  p.Filter.City,
		"type":  p.Filter.Category,
		"color": p.Color,
		"view":  p.ViewID,
	} {
		if v != "" {
			q.Set(key, v)
		}
	}
	return "?" + q.Encode()
}

// Heading describes the active filter, e.g. "espresso in Seattle".
func Heading(f shop.Filter) string {
	switch shop.Classify(f) {
	case shop.VariantCityAndCategory:
		return f.Category + " in " + f.City
	case shop.VariantCity:
		return "Shops in " + f.City
	case shop.VariantCategory:
		return f.Category
	default:
		return ""
	}
}

// Cards extracts display fields from each shop. Shops that are not JSON
// objects, or lack fields, still produce a card.
func Cards(shops []shop.Shop) []Card {
	cards := make([]Card, 0, len(shops))
	for _, s := range shops {
		cards = append(cards, CardFor(s))
	}
	return cards
}

// CardFor reads name, city, type and address from s.
func CardFor(s shop.Shop) Card {
	var fields map[string]any
	if err := json.Unmarshal(s, &fields); err != nil {
		// Not an object: an unnamed card with no details.
		fields = nil
	}

	c := Card{
		Name:     stringField(fields, "name"),
		City:     stringField(fields, "city"),
		Category: stringField(fields, "type"),
		Address:  stringField(fields, "address"),
	}
	if c.Name == "" {
		c.Name = UnnamedShop
	}
	return c
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

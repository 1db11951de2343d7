// Package dto holds the inbound request and outbound response shapes of the
// HTTP adapter.
package dto

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen11/storefront-shops/internal/domain"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
)

// MaxFilterLength bounds the city and type query parameters.
const MaxFilterLength = 100

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ShopsQuery is the query string accepted by the shop listing routes.
type ShopsQuery struct {
	City     string `query:"city" validate:"max=100"`
	Category string `query:"type" validate:"max=100"`
	// Color is the page background: a hex color or a CSS color name.
	Color string `query:"color" validate:"omitempty,max=32,hexcolor|alpha"`
	// View names the mounted view of a page that is polling for results.
	View string `query:"view" validate:"omitempty,uuid"`
}

// ParseShopsQuery reads and validates the shop query parameters of r.
// It returns a *domain.ValidationError naming each invalid parameter.
func ParseShopsQuery(r *http.Request) (ShopsQuery, error) {
	q := r.URL.Query()
	sq := ShopsQuery{
		City:     q.Get("city"),
		Category: q.Get("type"),
		Color:    q.Get("color"),
		View:     q.Get("view"),
	}
	return sq, sq.Validate()
}

// Validate checks the parameter bounds.
func (q ShopsQuery) Validate() error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating query: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

// Filter returns the domain filter for q.
func (q ShopsQuery) Filter() shop.Filter {
	return shop.Filter{City: q.City, Category: q.Category}
}

func message(fe validator.FieldError) string {
	switch {
	case fe.Tag() == "max":
		return "must be at most " + fe.Param() + " characters"
	case strings.Contains(fe.Tag(), "hexcolor"):
		return "must be a hex color or a color name"
	case fe.Tag() == "uuid":
		return "must be a view ID from a previous response"
	default:
		return "is invalid"
	}
}

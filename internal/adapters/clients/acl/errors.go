// Package acl is the anti-corruption layer between the drinks API and the
// shop domain. It owns the wire format of the listing endpoint and maps
// every downstream failure onto domain errors.
package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/storefront-shops/internal/domain"
)

// maxErrorBodySize limits how much of an error response body is read.
const maxErrorBodySize = 1 << 20 // 1 MB

// problemDetail is the subset of an RFC 9457 body the drinks API may send.
type problemDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// TranslateHTTPError maps an unexpected downstream status to a domain error.
// The problem detail, when the body carries one, becomes the message.
func TranslateHTTPError(resp *http.Response) error {
	detail := parseProblemDetail(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// TranslateTransportError maps a failure that produced no usable response.
// A rejecting circuit breaker means the downstream is unavailable.
func TranslateTransportError(req *http.Request, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, domain.ErrUnavailable, err)
	}
	return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
}

func parseProblemDetail(resp *http.Response) string {
	if resp.Body == nil || !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return ""
	}
	if pd.Detail != "" {
		return pd.Detail
	}
	return pd.Title
}

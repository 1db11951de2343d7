package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_DefaultsToOK(t *testing.T) {
	t.Parallel()

	rw := newResponseWriter(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.False(t, rw.headerWritten)
}

func TestResponseWriter_FirstWriteHeaderWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusServiceUnavailable)
	rw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusServiceUnavailable, rw.statusCode)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestResponseWriter_CountsBytes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	_, err := rw.Write([]byte("<main>"))
	require.NoError(t, err)
	_, err = rw.Write([]byte("</main>"))
	require.NoError(t, err)

	assert.True(t, rw.headerWritten)
	assert.Equal(t, int64(13), rw.written)
	assert.Equal(t, "<main></main>", rec.Body.String())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()

	assert.Same(t, rec, newResponseWriter(rec).Unwrap())
}

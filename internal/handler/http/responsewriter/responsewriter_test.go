package responsewriter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"newswire/internal/handler/http/responsewriter"
)

func TestRecordsStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	w.WriteHeader(http.StatusTeapot)
	n, err := w.Write([]byte("short and stout"))

	assert.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Equal(t, http.StatusTeapot, w.StatusCode())
	assert.Equal(t, 15, w.BytesWritten())
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	_, _ = w.Write([]byte("body"))

	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 4, w.BytesWritten())
}

func TestDuplicateWriteHeaderIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, w.StatusCode())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	assert.Equal(t, http.ResponseWriter(rec), w.Unwrap())
}

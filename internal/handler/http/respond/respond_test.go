package respond_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"newswire/internal/handler/http/respond"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.JSON(rec, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

func TestJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSafeErrorPassesValidationMessages(t *testing.T) {
	cases := []string{
		"title is required",
		"invalid article id",
		"article not found",
		"username already exists",
		"title must be 255 characters or less",
	}
	for _, msg := range cases {
		rec := httptest.NewRecorder()
		respond.SafeError(rec, http.StatusBadRequest, errors.New(msg))
		assert.Contains(t, rec.Body.String(), msg)
	}
}

func TestSafeErrorMasksInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, http.StatusInternalServerError,
		errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestSafeErrorAlwaysMasksServerErrors(t *testing.T) {
	// even a "safe" looking message is masked when the status is 5xx
	rec := httptest.NewRecorder()
	respond.SafeError(rec, http.StatusInternalServerError, errors.New("title is required"))

	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "dsn password",
			in:   "connect postgres://feed:s3cret@db:5432/feed: refused",
			want: "connect postgres://feed:****@db:5432/feed: refused",
		},
		{
			name: "jwt",
			in:   "reject eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhIn0.c2ln: expired",
			want: "reject eyJ****: expired",
		},
		{
			name: "plain",
			in:   "plain message",
			want: "plain message",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.SanitizeError(errors.New(tt.in)))
		})
	}
}

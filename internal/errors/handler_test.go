package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestErrorHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func handleAndDecode(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	handler := newTestErrorHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/view", nil)

	handler.HandleError(rec, req, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleError_APIError(t *testing.T) {
	code, body := handleAndDecode(t, ErrValidation("country", "Maximum of two countries allowed"))

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, TypeValidation, body["type"])
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
	assert.Equal(t, "/api/dashboard/view", body["instance"])
}

func TestHandleError_NoDataGetsDomainType(t *testing.T) {
	code, body := handleAndDecode(t, ErrNoData)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, TypeDataNotFound, body["type"])
	assert.Equal(t, "NO_DATA", body["error_code"])
}

func TestHandleError_DatasetLoadFailure(t *testing.T) {
	code, body := handleAndDecode(t, DatasetLoadError(errors.New("bad csv")))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, TypeDataLoadFailed, body["type"])
	assert.Equal(t, "DATASET_LOAD_FAILED", body["error_code"])
}

func TestHandleError_UnreadableSource(t *testing.T) {
	code, body := handleAndDecode(t, fmt.Errorf("source file unreadable: open data/x.csv: no such file"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, TypeDataLoadFailed, body["type"])
}

func TestHandleError_UnknownErrorIsOpaque(t *testing.T) {
	code, body := handleAndDecode(t, errors.New("secret internal detail"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, TypeInternal, body["type"])
	// Internal details never leak without includeStack
	assert.Equal(t, "An unexpected error occurred", body["detail"])
}

func TestHandleError_NilIsNoop(t *testing.T) {
	handler := newTestErrorHandler()
	rec := httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Empty(t, rec.Body.String())
}

func TestProblemDetails_MarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeDataNotFound, "Not Found", "nothing here", "/x").
		WithExtension("error_code", "NO_DATA")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "NO_DATA", body["error_code"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
}

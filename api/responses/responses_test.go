package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, "world", body["data"].(map[string]any)["hello"])
	require.NotContains(t, body, "count")
}

func TestWriteListIncludesCount(t *testing.T) {
	w := httptest.NewRecorder()
	WriteList(w, []string{}, 0)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, []any{}, body["data"])
	require.Equal(t, float64(0), body["count"])
}

func TestWriteErrorQueryFailureExposesDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})

	w := httptest.NewRecorder()
	WriteError(context.Background(), logg, w, pkgerrors.Query(errors.New("relation \"products\" does not exist"), "failed to count diamond listings"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	require.Equal(t, false, body["success"])
	require.Equal(t, "QUERY_FAILED", body["error"])
	require.Equal(t, "failed to count diamond listings", body["message"])
	require.Equal(t, "relation \"products\" does not exist", body["details"])
	require.Contains(t, buf.String(), "request.error")
	require.Contains(t, buf.String(), "error_chain")
}

func TestWriteErrorValidation(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").WithDetails(map[string]string{"page": "must be at least 1"})
	WriteError(context.Background(), nil, w, err)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	require.Equal(t, "VALIDATION_ERROR", body["error"])
	require.Equal(t, "bad input", body["message"])
	require.NotNil(t, body["details"])
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	require.Equal(t, "INTERNAL_ERROR", body["error"])
	require.Equal(t, "internal server error", body["message"])
	require.NotContains(t, body, "details")
}

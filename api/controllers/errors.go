package controllers

import (
	"net/http"

	"github.com/angelmondragon/tradedir-backend/api/responses"
	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
)

// NotFound answers unknown routes with the NOT_FOUND envelope.
func NotFound(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	}
}

// MethodNotAllowed answers known routes called with an unsupported method.
func MethodNotAllowed(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethod, "method not allowed"))
	}
}

package server

import (
	"net/http"

	apperrors "github.com/emcapi/emcapi/internal/errors"
)

// HandleError is the single error responder for routes and handlers.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}

// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/provchain/pkg/httpx"
	ledgerdomain "github.com/ghuser/provchain/services/ledger/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ledgerdomain.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, ledgerdomain.ErrAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, ledgerdomain.ErrStageMismatch):
		return http.StatusConflict // 409 — caller should re-fetch and retry
	case errors.Is(err, ledgerdomain.ErrInvalidTransition):
		return http.StatusConflict // 409
	case errors.Is(err, ledgerdomain.ErrInvalidInput):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}

package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/handler/http/respond"
	"adsnow-blog/internal/infra/importer"
	"adsnow-blog/internal/resilience/retry"
	postUC "adsnow-blog/internal/usecase/post"

	"github.com/sony/gobreaker"
)

// writeError maps use case errors to status codes. Validation messages are
// written verbatim; anything unexpected is logged and hidden.
func writeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	var httpErr *retry.HTTPError

	switch {
	case errors.Is(err, entity.ErrNotFound):
		respond.Message(w, http.StatusNotFound, "post not found")
	case errors.As(err, &maxErr):
		respond.Message(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, errBadJSON):
		respond.Message(w, http.StatusBadRequest, err.Error())
	case postUC.IsClientError(err):
		respond.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, postUC.ErrImportNotConfigured):
		respond.Message(w, http.StatusNotImplemented, err.Error())
	case errors.Is(err, importer.ErrInvalidURL), errors.Is(err, importer.ErrPrivateIP):
		respond.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gobreaker.ErrOpenState):
		respond.Message(w, http.StatusServiceUnavailable, "imports are paused after repeated failures, try again later")
	case errors.Is(err, importer.ErrTimeout):
		respond.Message(w, http.StatusGatewayTimeout, "the page did not load in time")
	case errors.As(err, &httpErr):
		respond.Message(w, http.StatusBadGateway, fmt.Sprintf("the page answered HTTP %d", httpErr.StatusCode))
	case errors.Is(err, importer.ErrBodyTooLarge),
		errors.Is(err, importer.ErrTooManyRedirects),
		errors.Is(err, importer.ErrNoContent):
		respond.Message(w, http.StatusBadGateway, err.Error())
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

var errBadJSON = errors.New("invalid JSON body")

// decode reads one JSON value from the body. An oversized body keeps its
// *http.MaxBytesError; every other failure becomes errBadJSON.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}

package restapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/transitstats/mta-ridership/internal/logging"
	"github.com/transitstats/mta-ridership/internal/models"
	"github.com/transitstats/mta-ridership/internal/ridership"
	"github.com/transitstats/mta-ridership/internal/utils"
)

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("path", r.URL.Path),
		slog.String("component", "rest_api"))

	api.sendResponse(w, r, models.NewErrorResponse(http.StatusInternalServerError, "internal server error"))
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors utils.FieldErrors) {
	response := struct {
		FieldErrors utils.FieldErrors `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	setJSONResponseType(w)
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}

// derivationErrorResponse maps metric errors onto HTTP statuses: a year with no records is
// 404, a computation the data cannot support is 422, anything else is a server error.
func (api *RestAPI) derivationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		empty    *ridership.EmptyPeriodError
		baseline *ridership.MissingBaselineYearError
		divZero  *ridership.DivisionByZeroError
	)

	switch {
	case errors.As(err, &empty):
		api.sendResponse(w, r, models.NewErrorResponse(http.StatusNotFound, err.Error()))
	case errors.As(err, &baseline), errors.As(err, &divZero):
		api.sendResponse(w, r, models.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
	default:
		api.serverErrorResponse(w, r, err)
	}
}

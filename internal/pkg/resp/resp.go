/*
Package resp provides helper functions for constructing and sending standardized HTTP JSON responses.

The envelope mirrors the one spoken by the Thinkle backend: a numeric statusCode (0 for
success), a message and an optional data payload.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/logx"
)

// JSONResponse is the envelope returned by every JSON endpoint of this server.
type JSONResponse struct {
	// StatusCode is the business status code (0 for success, see errs package otherwise).
	StatusCode int `json:"statusCode"`

	// Message is the client-friendly status description or error message.
	Message string `json:"message"`

	// Data is the optional response payload.
	Data any `json:"data"`
}

// RespondJSON sets the JSON headers and writes payload with the given HTTP status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus, "path", r.URL.Path)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	_, _ = w.Write(response)
}

// RespondSuccess sends a successful envelope (HTTP 200 OK).
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusOK, JSONResponse{
		StatusCode: 0,
		Message:    "success",
		Data:       data,
	})
}

// RespondError sends an envelope carrying customErr. A nil error is reported as ErrUnknown.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, JSONResponse{
		StatusCode: customErr.Code,
		Message:    customErr.Message,
	})
}

// RespondValidation sends ErrValidationFailed with the rejected fields as data.
func RespondValidation(w http.ResponseWriter, r *http.Request, verr *errs.ValidationError) {
	customErr := errs.NewError(errs.ErrValidationFailed)
	RespondJSON(w, r, http.StatusUnprocessableEntity, JSONResponse{
		StatusCode: customErr.Code,
		Message:    customErr.Message,
		Data:       verr.Fields,
	})
}

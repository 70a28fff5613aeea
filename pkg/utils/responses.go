package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Payload    any    `json:"payload,omitempty"`
	Errors     any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, message string, payload, errors any) {
	response := Response{
		StatusCode: code,
		Message:    message,
		Payload:    payload,
		Errors:     errors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, payload any) {
	ResponseJSON(w, http.StatusOK, message, payload, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, payload any) {
	ResponseJSON(w, http.StatusCreated, message, payload, nil)
}

// ------------- Error responses -------------

// ResponseError is the single place a failure becomes a response. Client
// errors are logged at Warn, server errors at Error with their cause.
func ResponseError(w http.ResponseWriter, log *zap.Logger, err error) {
	appErr := AsAppError(err)

	if appErr.Code >= http.StatusInternalServerError {
		log.Error("Request failed",
			zap.Int("status", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	} else {
		log.Warn("Request rejected",
			zap.Int("status", appErr.Code),
			zap.String("message", appErr.Message),
			zap.NamedError("cause", appErr.Err),
		)
	}

	var fields any
	if len(appErr.Fields) > 0 {
		fields = appErr.Fields
	}
	ResponseJSON(w, appErr.Code, appErr.Message, nil, fields)
}

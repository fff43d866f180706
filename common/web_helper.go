package common

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultErrorHTTPCode = http.StatusBadRequest

// HTTPError carries an http status code along with the error message
// so handlers can pick the response code for a failure.
type HTTPError struct {
	Code    int
	Message string
}

func (he HTTPError) Error() string {
	return he.Message
}

// NewHTTPError builds an HTTPError with a formatted message.
func NewHTTPError(code int, format string, args ...interface{}) HTTPError {
	return HTTPError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// DataHandler is an API handler receiving an http request and returning
// JSON-able data.
type DataHandler func(*http.Request) (interface{}, error)

// BinaryHandler is an API handler returning raw bytes (archive and
// checksum payloads).
type BinaryHandler func(*http.Request) ([]byte, error)

type httpErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSONError returns an API error to the caller in JSON format,
// using the HTTPError code when the error carries one.
func WriteJSONError(w http.ResponseWriter, e error) error {
	he, ok := e.(HTTPError)
	if !ok {
		he = HTTPError{Code: defaultErrorHTTPCode, Message: e.Error()}
	}

	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(httpErrorResponse{Error: he.Error()})
	if err != nil {
		// this shouldn't ever happen
		w.WriteHeader(http.StatusInternalServerError)
		_, err = w.Write([]byte(`{"error": "internal server error"}`))
		return err
	}
	w.WriteHeader(he.Code)
	_, err = w.Write(data)
	return err
}

// JSONResponse converts a DataHandler to a http.HandlerFunc.
func JSONResponse(handler DataHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseData, err := handler(r)
		if err != nil {
			WriteJSONError(w, err)
			return
		}
		data, err := json.Marshal(responseData)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "marshalling error"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

// BinaryResponse converts a BinaryHandler to a http.HandlerFunc writing
// an octet-stream body.
func BinaryResponse(handler BinaryHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := handler(r)
		if err != nil {
			WriteJSONError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(data)
	}
}

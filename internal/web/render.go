package web

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hpungsan/tweetsmith/internal/errors"
)

// maxBodyBytes caps request bodies; drafts and saved records are small.
const maxBodyBytes = 1 << 20

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes {"error": message} with the status carried by err.
// Anything that is not an AppError is reported as an internal error.
func renderError(w http.ResponseWriter, err error) {
	appErr := errors.As(err)
	renderJSON(w, appErr.Status, map[string]string{"error": appErr.Message})
}

// decodeBody decodes a JSON request body into dst. Type mismatches are
// reported against the offending field name.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.As(err, &typeErr):
			return errors.NewInvalidRequest(fmt.Sprintf("Missing or invalid '%s' field. Expected a %s.", fieldName(typeErr.Field), jsonKind(typeErr.Type.Kind().String())))
		case stderrors.As(err, &maxErr):
			return errors.NewInvalidRequest("Request body too large.")
		case stderrors.Is(err, io.EOF):
			return errors.NewInvalidRequest("Request body must be a JSON object.")
		default:
			return errors.NewInvalidRequest("Invalid JSON in request body.")
		}
	}
	return nil
}

// fieldName returns the last segment of a dotted JSON path, so a type error
// in filters.maxChars names "maxChars".
func fieldName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	if path == "" {
		return "body"
	}
	return path
}

// jsonKind maps a Go kind to the JSON type a client would send.
func jsonKind(kind string) string {
	switch kind {
	case "int", "int64", "float64":
		return "number"
	case "bool":
		return "boolean"
	case "struct", "map":
		return "object"
	default:
		return kind
	}
}

package httpx

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
)

// JSON writes v as JSON with the given status code. Encoding errors are
// discarded, so use it for handler responses only.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// SafeError returns the error message for client responses.
// In production (isProduction=true), internal server errors (5xx) are replaced
// with a generic message to avoid leaking implementation details.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}

// Attachment writes body as a file download named filename.
func Attachment(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

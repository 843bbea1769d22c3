package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"resto-ads/internal/core/port"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	// the status line is already sent, nothing useful to do on failure
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON document into dst. Unknown fields are
// accepted.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return port.Validationf("request body is empty")
		}
		return port.Validationf("invalid JSON: %v", err)
	}
	return nil
}

// statusOf maps a usecase error to an HTTP status. The order matters:
// ErrAlreadyPromoted and ErrPromotionInProgress also wrap ErrValidation.
func statusOf(err error) int {
	var pe *port.PlatformError
	switch {
	case errors.Is(err, port.ErrAlreadyPromoted),
		errors.Is(err, port.ErrPromotionInProgress),
		errors.Is(err, port.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, port.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, port.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, port.ErrConfiguration),
		errors.Is(err, port.ErrPlatformRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, port.ErrNotPersisted),
		errors.As(err, &pe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with the mapped status. Internal errors are logged and
// their text is not exposed.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), op+" failed", slog.Any("error", err))
		msg = "internal error"
	}
	writeError(w, status, msg)
}

// optionalString returns a pointer to the query value or nil when absent.
func optionalString(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func optionalInt(r *http.Request, key string) (*int64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, port.Validationf("invalid %s %q", key, v)
	}
	return &n, nil
}

func parseInt(key, v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", port.ErrValidation, key, v)
	}
	return n, nil
}

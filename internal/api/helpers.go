package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/honlnm/biztime/internal/entity"
)

type ErrorResponse struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

func SendJSONErr(ctx context.Context, w http.ResponseWriter, code int, originErr error, msgToSend string) {
	if originErr == nil {
		originErr = errors.New(msgToSend)
	}

	slog.ErrorContext(ctx, "api error", "error", originErr.Error())
	SendJSON(ctx, w, code, ErrorResponse{Message: msgToSend, Description: originErr.Error()})
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.ErrorContext(ctx, "encode response", "error", err)
	}
}

// decodeRequest reads a single JSON value from the body into req and
// validates it. Failures are reported as entity.ErrInvalidArgument.
func (h *Handler) decodeRequest(r *http.Request, req any) error {
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(req)
	if err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", entity.ErrInvalidArgument, err)
	}

	_, err = dec.Token()
	if !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON: unexpected data after the request object", entity.ErrInvalidArgument)
	}

	return h.validate.Validate(req)
}

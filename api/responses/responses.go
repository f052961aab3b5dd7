package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
)

// fallbackLogger covers paths with no handler logger, such as success writes.
var fallbackLogger = logger.New(logger.Options{ServiceName: "api"})

// WriteSuccess writes the payload as-is with a 200. Collections are returned
// as bare JSON arrays, not wrapped in an envelope.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(context.Background(), nil, w, status, data)
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError maps the error to its HTTP status and writes {"error": message}.
// Messages from client-caused errors pass through verbatim; server-side
// failures only expose the generic public message.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation, pkgerrors.CodeNotFound, pkgerrors.CodeConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code": string(typed.Code()),
			"status":     meta.HTTPStatus,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(ctx, logg, w, meta.HTTPStatus, errorBody{Error: msg})
}

func writeJSON(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		if logg == nil {
			logg = fallbackLogger
		}
		logg.Error(ctx, "failed to encode response", err)
	}
}

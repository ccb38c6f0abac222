package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grc-lab/riskreg/pkg/usecase"
	"github.com/grc-lab/riskreg/pkg/utils/errutil"
	"github.com/grc-lab/riskreg/pkg/utils/logging"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(ctx).Error("failed to encode response", "error", err)
	}
}

// respondError maps use case errors to HTTP status codes and logs them
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrRiskNotFound), errors.Is(err, usecase.ErrActionNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidInput):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

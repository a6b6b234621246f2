package common

import (
	"context"
	"errors"
	"net/http"

	"github.com/joshu-sajeev/bidboard/internal/storage"
)

// StoreError maps a repository error to the APIError a client sees. what
// names the record ("job", "bid") and op the failed action ("list jobs").
func StoreError(err error, what, op string) APIError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindErrf(http.StatusRequestTimeout, KindTimeout, "request timeout")
	case errors.Is(err, context.Canceled):
		return KindErrf(http.StatusRequestTimeout, KindTimeout, "request was canceled")
	case errors.Is(err, storage.ErrNotFound):
		return KindErrf(http.StatusNotFound, KindNotFound, "%s not found", what)
	case errors.Is(err, storage.ErrJobNotFound):
		return KindErrf(http.StatusNotFound, KindNotFound, "job not found")
	case errors.Is(err, storage.ErrDuplicate):
		return KindErrf(http.StatusConflict, KindConflict, "%s already exists", what)
	case errors.Is(err, storage.ErrConflict):
		return KindErrf(http.StatusConflict, KindConflict, "%s was changed concurrently", what)
	default:
		return KindErrf(http.StatusInternalServerError, KindStoreUnavailable, "failed to %s", op)
	}
}

// CheckContext returns a timeout APIError if ctx is already done.
func CheckContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return KindErrf(http.StatusRequestTimeout, KindTimeout, "request canceled or timed out")
	}
	return nil
}

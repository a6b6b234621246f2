package common

import "fmt"

// Kinds classify an APIError for clients independent of the HTTP status.
const (
	KindValidation        = "validation"
	KindNotFound          = "not_found"
	KindDuplicateBid      = "duplicate_bid"
	KindInvalidStatus     = "invalid_status"
	KindInvalidTransition = "invalid_transition"
	KindConflict          = "conflict"
	KindTimeout           = "timeout"
	KindStoreUnavailable  = "store_unavailable"
)

type APIError struct {
	Status  int            `json:"-"`
	Kind    string         `json:"kind,omitempty"`
	Message string         `json:"error"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func (e APIError) Error() string {
	return e.Message
}

func Errf(status int, format string, args ...any) APIError {
	return APIError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// KindErrf is Errf with an explicit kind.
func KindErrf(status int, kind, format string, args ...any) APIError {
	return APIError{Status: status, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

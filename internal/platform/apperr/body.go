package apperr

import (
	"errors"
	"log"
)

type envelope struct {
	Error APIError `json:"error"`
}

// Body builds the JSON error envelope for a handler response. Internal
// errors are logged here and replaced with a generic message so corrupted
// state never leaks into a client-facing body.
func Body(err error) any {
	var api *APIError
	if !errors.As(err, &api) {
		log.Printf("[ERROR] unclassified: %v", err)
		return envelope{Error: APIError{Code: CodeInternal, Message: "internal error"}}
	}
	if api.Code == CodeInternal {
		log.Printf("[ERROR] invariant violation: %v", err)
		return envelope{Error: APIError{Code: CodeInternal, Message: "internal error"}}
	}
	return envelope{Error: *api}
}

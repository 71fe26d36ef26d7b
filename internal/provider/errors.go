package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies an upstream failure. No kind is retried automatically;
// every failure is terminal for the originating request.
type Kind string

const (
	KindInvalid     Kind = "invalid_input"
	KindAuth        Kind = "auth_failure"
	KindRateLimited Kind = "rate_limited"
	KindTimeout     Kind = "timeout"
	KindUnavailable Kind = "unavailable"
	KindNotFound    Kind = "not_found"
	KindGeneric     Kind = "generic"
)

type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Body     string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func statusError(provider string, status int, body []byte) *Error {
	kind := KindGeneric
	switch status {
	case 400, 422:
		kind = KindInvalid
	case 401, 403:
		kind = KindAuth
	case 404:
		kind = KindNotFound
	case 429:
		kind = KindRateLimited
	case 502, 503:
		kind = KindUnavailable
	}
	return &Error{Provider: provider, Kind: kind, Status: status, Body: string(body)}
}

// transportError classifies request-level failures: deadline overruns become
// timeouts, refused connections an unavailable upstream.
func transportError(provider string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Provider: provider, Kind: KindTimeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Provider: provider, Kind: KindTimeout}
	}
	return &Error{Provider: provider, Kind: KindUnavailable, Body: err.Error()}
}

package itinerary

import (
	"errors"
	"fmt"
)

// Kind classifies why a generation failed. The set is closed: callers switch
// on it instead of inspecting error messages.
type Kind int

const (
	// KindConfiguration: no provider credential is configured at all.
	KindConfiguration Kind = iota + 1
	// KindRateLimited: the provider answered 429.
	KindRateLimited
	// KindRequestInvalid: the provider answered 400. Usually a model or
	// account mismatch on that provider rather than a bad prompt.
	KindRequestInvalid
	// KindPaymentRequired: the provider answered 402 (credits exhausted).
	KindPaymentRequired
	// KindUnavailable: any other non-2xx answer, or an undecodable 2xx body.
	KindUnavailable
	// KindTransport: the call failed before an HTTP response was received
	// (dial error, reset, per-call timeout).
	KindTransport
	// KindEmptyCompletion: 2xx with no message content.
	KindEmptyCompletion
	// KindParse: no JSON value could be recovered from the completion.
	KindParse
	// KindShape: JSON was found but holds no non-empty array of day objects.
	KindShape
)

var kindNames = map[Kind]string{
	KindConfiguration:   "configuration",
	KindRateLimited:     "rate_limited",
	KindRequestInvalid:  "request_invalid",
	KindPaymentRequired: "payment_required",
	KindUnavailable:     "unavailable",
	KindTransport:       "transport",
	KindEmptyCompletion: "empty_completion",
	KindParse:           "parse",
	KindShape:           "shape",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// retryable reports whether a primary failure of this kind moves the
// orchestrator to the secondary provider.
func (k Kind) retryable() bool {
	switch k {
	case KindRateLimited, KindRequestInvalid, KindTransport:
		return true
	}
	return false
}

// Error is the structured failure returned by every stage of generation.
// Status and Body are set for failures that carried an HTTP response.
type Error struct {
	Kind     Kind
	Provider string
	Status   int
	Body     string
	Err      error
}

func (e *Error) Error() string {
	msg := "itinerary: " + e.Kind.String()
	if e.Provider != "" {
		msg += " (" + e.Provider + ")"
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or 0 when err
// did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ErrNoProvider is wrapped by KindConfiguration errors.
var ErrNoProvider = errors.New("no LLM provider credential configured")

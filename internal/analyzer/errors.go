package analyzer

import "fmt"

// Kind classifies a pipeline failure. The set is closed: every stage failure
// maps to exactly one of these, so the transport layer never has to guess a
// status code from error text.
type Kind int

const (
	// KindInvalidQuery means the raw query failed validation.
	KindInvalidQuery Kind = iota
	// KindProviderUnavailable covers missing credential, transport failure,
	// timeout, and provider-side rejection.
	KindProviderUnavailable
	// KindMalformedOutput covers missing JSON, parse failure, and schema
	// mismatch in the model's response.
	KindMalformedOutput
	// KindUnknown is anything a stage did not anticipate.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindInvalidQuery:
		return "invalid_query"
	case KindProviderUnavailable:
		return "provider_unavailable"
	case KindMalformedOutput:
		return "malformed_output"
	default:
		return "unknown"
	}
}

// Error is the pipeline's only error type. Reason is a short machine-readable
// tag ("empty", "no_json", "schema_error", ...); Detail carries the full
// diagnostic and is for server-side logs only, never for clients.
type Error struct {
	Kind   Kind
	Reason string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s(%s): %s", e.Kind, e.Reason, e.Detail)
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Reason)
}

// UserMessage is the short, non-technical string shown to the end user. It
// never includes raw provider text or internal detail.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindInvalidQuery:
		switch e.Reason {
		case "empty":
			return "Please enter a company name or website to analyze."
		case "too_long":
			return "That query is too long. Please keep it under 500 characters."
		}
		return "That query could not be processed. Please try a different one."
	case KindProviderUnavailable:
		return "The analysis service is currently unavailable. Please try again later."
	case KindMalformedOutput:
		return "The analysis could not be completed for this query. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

func invalidQuery(reason string) *Error {
	return &Error{Kind: KindInvalidQuery, Reason: reason}
}

func providerUnavailable(reason string, err error) *Error {
	e := &Error{Kind: KindProviderUnavailable, Reason: reason}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

func malformedOutput(reason, detail string) *Error {
	return &Error{Kind: KindMalformedOutput, Reason: reason, Detail: detail}
}

func unknownError(err error) *Error {
	return &Error{Kind: KindUnknown, Reason: "internal", Detail: err.Error()}
}

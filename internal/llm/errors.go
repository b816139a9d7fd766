package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/sashabaranov/go-openai"
)

var (
	// ErrMissingCredential is returned when a provider needs an API key and none is configured
	ErrMissingCredential = errors.New("missing API credential")

	// ErrAuthentication marks 401/403 responses
	ErrAuthentication = errors.New("authentication failed")

	// ErrRateLimited marks 429 responses and quota exhaustion
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformedResponse marks bodies that could not be decoded
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyResponse marks well-formed responses carrying no text
	ErrEmptyResponse = errors.New("empty response")
)

// statusError maps an HTTP status to a sentinel, or nil for other statuses
func statusError(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthentication
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}

// Classify maps any completion error to the failure kind shown to the user
func Classify(err error) model.FailureKind {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return model.FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.FailureTimeout
	}

	switch {
	case errors.Is(err, ErrAuthentication), errors.Is(err, ErrMissingCredential):
		return model.FailureAuthentication
	case errors.Is(err, ErrRateLimited):
		return model.FailureRateLimit
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrEmptyResponse):
		return model.FailureMalformedResponse
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return model.FailureMalformedResponse
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if kind := kindForStatus(apiErr.HTTPStatusCode); kind != "" {
			return kind
		}
		return model.FailureRemote
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if kind := kindForStatus(reqErr.HTTPStatusCode); kind != "" {
			return kind
		}
		return model.FailureRemote
	}

	if netErr != nil {
		return model.FailureNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return model.FailureNetwork
	}

	return model.FailureRemote
}

func kindForStatus(code int) model.FailureKind {
	switch statusError(code) {
	case ErrAuthentication:
		return model.FailureAuthentication
	case ErrRateLimited:
		return model.FailureRateLimit
	default:
		return ""
	}
}

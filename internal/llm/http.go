package llm

import "fmt"

// apiStatusError builds the error for a non-200 response. describe extracts a
// provider-specific message from the body and returns "" when it cannot.
// 401/403/429 wrap the matching sentinel so Classify can name the failure.
func apiStatusError(code int, body []byte, describe func([]byte) string) error {
	msg := describe(body)
	if msg == "" {
		msg = truncate(string(body), 200)
	}

	if sentinel := statusError(code); sentinel != nil {
		return fmt.Errorf("%w: API error (%d): %s", sentinel, code, msg)
	}
	return fmt.Errorf("API error (%d): %s", code, msg)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package model

import "github.com/shopspring/decimal"

// Answer is the single text reply returned to the presentation layer.
// Subject and Value carry the data the text was rendered from, so callers
// never have to parse Text back.
type Answer struct {
	Text    string          `json:"text"`
	Source  AnswerSource    `json:"source"`
	Rule    string          `json:"rule,omitempty"`    // Rule that produced the answer (rule source only)
	Subject string          `json:"subject,omitempty"` // Product, customer or region name
	Value   decimal.Decimal `json:"value"`
	Failure FailureKind     `json:"failure,omitempty"` // Set for assistant_error answers
}

// AnswerSource tells where an answer came from
type AnswerSource string

const (
	SourceRule           AnswerSource = "rule"            // Deterministic aggregate rule
	SourceAssistant      AnswerSource = "assistant"       // Remote text completion
	SourceAssistantError AnswerSource = "assistant_error" // Remote call failed
	SourceUnavailable    AnswerSource = "unavailable"     // No credential / provider configured
)

// FailureKind names the reason a remote completion failed
type FailureKind string

const (
	FailureTimeout           FailureKind = "timeout"
	FailureAuthentication    FailureKind = "authentication"
	FailureRateLimit         FailureKind = "rate limit"
	FailureNetwork           FailureKind = "network"
	FailureMalformedResponse FailureKind = "malformed response"
	FailureRemote            FailureKind = "remote"
)

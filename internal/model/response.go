package model

import "time"

// ResponseStatus is the caller-visible outcome of an evaluation
type ResponseStatus string

const (
	StatusAccepted ResponseStatus = "accepted"
	StatusClarify  ResponseStatus = "clarify"
	StatusRejected ResponseStatus = "rejected"
)

// RejectReason explains a rejected query
type RejectReason string

const (
	RejectInputTooLong          RejectReason = "input_too_long"
	RejectEmptyQuery            RejectReason = "empty_query"
	RejectNoResolvableEntities  RejectReason = "no_resolvable_entities"
	RejectNoValidInterpretation RejectReason = "no_valid_interpretation"
)

// ClarifyCandidate is one alternative reading offered back to the user
type ClarifyCandidate struct {
	Restatement    string         `json:"restatement"` // "Did you mean: ..."
	Interpretation Interpretation `json:"interpretation"`
}

// Response is the single evaluation result surface. Exactly one of the
// variant fields is populated, selected by Status; internal stage failures
// never leak past it.
type Response struct {
	Status         ResponseStatus     `json:"status"`
	Interpretation *Interpretation    `json:"interpretation,omitempty"` // Accepted
	Candidates     []ClarifyCandidate `json:"candidates,omitempty"`     // Clarify, ranked
	Reason         RejectReason       `json:"reason,omitempty"`         // Rejected
	Message        string             `json:"message,omitempty"`        // Human-readable detail
}

// Accepted builds an accepted response
func Accepted(interp Interpretation) Response {
	return Response{Status: StatusAccepted, Interpretation: &interp}
}

// Clarify builds a clarification response
func Clarify(candidates []ClarifyCandidate) Response {
	return Response{
		Status:     StatusClarify,
		Candidates: candidates,
		Message:    "query is ambiguous; pick one of the candidate readings",
	}
}

// Rejected builds a rejected response
func Rejected(reason RejectReason, message string) Response {
	return Response{Status: StatusRejected, Reason: reason, Message: message}
}

// QueryResult wraps a response with service-level bookkeeping for batch
// reports and presentation layers.
type QueryResult struct {
	ID       string        `json:"id"` // Unique per evaluation
	Query    string        `json:"query"`
	Response Response      `json:"response"`
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"duration_ns"`
}

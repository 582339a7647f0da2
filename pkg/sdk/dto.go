package sdk

import (
	"encoding/json"
	"fmt"
)

/** Responses */

// MessageResponse is the body of every error response
type MessageResponse struct {
	Message string `json:"message"`
}

// CapitalResponse is returned by GET /states/:code/capital
type CapitalResponse struct {
	State   string `json:"state"`
	Capital string `json:"capital"`
}

// NicknameResponse is returned by GET /states/:code/nickname
type NicknameResponse struct {
	State    string `json:"state"`
	Nickname string `json:"nickname"`
}

// PopulationResponse is returned by GET /states/:code/population. Population is formatted for display
type PopulationResponse struct {
	State      string `json:"state"`
	Population string `json:"population"`
}

// AdmissionResponse is returned by GET /states/:code/admission
type AdmissionResponse struct {
	State    string `json:"state"`
	Admitted string `json:"admitted"`
}

// FunFactResponse is returned by GET /states/:code/funfact
type FunFactResponse struct {
	FunFact string `json:"funfact"`
}

/** Requests */

// AddFunFactsRequest represents the request body for adding fun facts.
// FunFacts is kept raw so the server can tell a missing value from a value that is not a list.
type AddFunFactsRequest struct {
	FunFacts json.RawMessage `json:"funfacts"`
}

// NewAddFunFactsRequest creates an add request for a list of facts
func NewAddFunFactsRequest(facts []string) (*AddFunFactsRequest, error) {
	raw, err := json.Marshal(facts)
	if err != nil {
		return nil, err
	}
	return &AddFunFactsRequest{FunFacts: raw}, nil
}

// UpdateFunFactRequest represents the request body for replacing a fun fact. Index is one-based
type UpdateFunFactRequest struct {
	Index   *int   `json:"index,omitempty"`
	FunFact string `json:"funfact"`
}

// DeleteFunFactRequest represents the request body for removing a fun fact. Index is one-based
type DeleteFunFactRequest struct {
	Index *int `json:"index,omitempty"`
}

/** Errors */

// APIError is returned by the client for any non-2xx response
type APIError struct {
	Status  int    // HTTP status code
	Message string // Message from the response body
}

func (e *APIError) Error() string {
	return fmt.Sprintf("states api returned %d: %s", e.Status, e.Message)
}

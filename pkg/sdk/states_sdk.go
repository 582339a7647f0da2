package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethanbaker/states/pkg/states"
)

// ListStates returns every state. A non-nil contig limits the list to contiguous (true) or non-contiguous (false) states
func (c *Client) ListStates(ctx context.Context, contig *bool) ([]states.MergedStateView, error) {
	path := "/states"
	if contig != nil {
		path += "?" + url.Values{"contig": {strconv.FormatBool(*contig)}}.Encode()
	}

	var out []states.MergedStateView
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetState returns one state with its fun facts
func (c *Client) GetState(ctx context.Context, code string) (*states.MergedStateView, error) {
	var out states.MergedStateView
	if err := c.doJSON(ctx, http.MethodGet, statePath(code, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCapital returns the capital of a state
func (c *Client) GetCapital(ctx context.Context, code string) (*CapitalResponse, error) {
	var out CapitalResponse
	if err := c.doJSON(ctx, http.MethodGet, statePath(code, "capital"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNickname returns the nickname of a state
func (c *Client) GetNickname(ctx context.Context, code string) (*NicknameResponse, error) {
	var out NicknameResponse
	if err := c.doJSON(ctx, http.MethodGet, statePath(code, "nickname"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPopulation returns the formatted population of a state
func (c *Client) GetPopulation(ctx context.Context, code string) (*PopulationResponse, error) {
	var out PopulationResponse
	if err := c.doJSON(ctx, http.MethodGet, statePath(code, "population"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAdmission returns the admission date of a state
func (c *Client) GetAdmission(ctx context.Context, code string) (*AdmissionResponse, error) {
	var out AdmissionResponse
	if err := c.doJSON(ctx, http.MethodGet, statePath(code, "admission"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFunFact returns a random fun fact for a state
func (c *Client) GetFunFact(ctx context.Context, code string) (string, error) {
	var out FunFactResponse
	if err := c.doJSON(ctx, http.MethodGet, statePath(code, "funfact"), nil, &out); err != nil {
		return "", err
	}
	return out.FunFact, nil
}

// AddFunFacts appends fun facts to a state
func (c *Client) AddFunFacts(ctx context.Context, code string, facts []string) (*states.FunFactOverlay, error) {
	req, err := NewAddFunFactsRequest(facts)
	if err != nil {
		return nil, err
	}

	var out states.FunFactOverlay
	if err := c.doJSON(ctx, http.MethodPost, statePath(code, "funfact"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFunFact replaces the fun fact at a one-based index
func (c *Client) UpdateFunFact(ctx context.Context, code string, index int, fact string) (*states.FunFactOverlay, error) {
	req := &UpdateFunFactRequest{Index: &index, FunFact: fact}

	var out states.FunFactOverlay
	if err := c.doJSON(ctx, http.MethodPatch, statePath(code, "funfact"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFunFact removes the fun fact at a one-based index
func (c *Client) DeleteFunFact(ctx context.Context, code string, index int) (*states.FunFactOverlay, error) {
	req := &DeleteFunFactRequest{Index: &index}

	var out states.FunFactOverlay
	if err := c.doJSON(ctx, http.MethodDelete, statePath(code, "funfact"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// statePath builds the path for a state resource
func statePath(code, resource string) string {
	path := fmt.Sprintf("/states/%s", url.PathEscape(code))
	if resource != "" {
		path += "/" + resource
	}
	return path
}

package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Sanity implements Client over the Sanity HTTP API.
//
// Reads and writes use separate resty clients: queries are retried on
// transport errors and 5xx replies, mutations are sent once.
type Sanity struct {
	read    *resty.Client
	write   *resty.Client
	dataset string
	version string
}

var _ Client = (*Sanity)(nil)

// NewSanity builds a client for cfg.
func NewSanity(cfg Config) *Sanity {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	read := resty.New().
		SetBaseURL(cfg.QueryHost()).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		}).
		SetHeader("Accept", "application/json")

	write := resty.New().
		SetBaseURL(cfg.APIHost()).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		read.SetAuthToken(cfg.Token)
		write.SetAuthToken(cfg.Token)
	}

	return &Sanity{
		read:    read,
		write:   write,
		dataset: cfg.Dataset,
		version: cfg.version(),
	}
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// errorResponse covers both error shapes Sanity sends: an object under
// "error" for query and mutation failures, and a plain string plus "message"
// for auth failures.
type errorResponse struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type mutateRequest struct {
	Mutations []map[string]any `json:"mutations"`
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

// Query runs query against the dataset and decodes the "result" member into out.
func (s *Sanity) Query(ctx context.Context, query string, params map[string]any, out any) error {
	req := s.read.R().
		SetContext(ctx).
		SetQueryParam("query", query)

	for name, v := range params {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("cms.Sanity.Query: encode param %s: %w", name, err)
		}
		req.SetQueryParam("$"+name, string(b))
	}

	var (
		result  queryResponse
		failure errorResponse
	)
	resp, err := req.
		SetResult(&result).
		SetError(&failure).
		Get(fmt.Sprintf("/%s/data/query/%s", s.version, s.dataset))
	if err != nil {
		return fmt.Errorf("cms.Sanity.Query: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("cms.Sanity.Query: %w", apiError(resp.StatusCode(), failure))
	}
	if out == nil || len(result.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Result, out); err != nil {
		return fmt.Errorf("cms.Sanity.Query: decode result: %w", err)
	}
	return nil
}

// Create sends a single create mutation and returns the stored document id.
func (s *Sanity) Create(ctx context.Context, doc any) (string, error) {
	res, err := s.mutate(ctx, map[string]any{"create": doc})
	if err != nil {
		return "", fmt.Errorf("cms.Sanity.Create: %w", err)
	}
	if len(res.Results) == 0 || res.Results[0].ID == "" {
		return "", fmt.Errorf("cms.Sanity.Create: response carried no document id")
	}
	return res.Results[0].ID, nil
}

// Patch sends a single patch mutation for id.
func (s *Sanity) Patch(ctx context.Context, id string, p Patch) error {
	if p.Empty() {
		return nil
	}
	body := map[string]any{"id": id}
	if len(p.Set) > 0 {
		body["set"] = p.Set
	}
	if len(p.SetIfMissing) > 0 {
		body["setIfMissing"] = p.SetIfMissing
	}
	if len(p.Inc) > 0 {
		body["inc"] = p.Inc
	}
	if _, err := s.mutate(ctx, map[string]any{"patch": body}); err != nil {
		return fmt.Errorf("cms.Sanity.Patch %s: %w", id, err)
	}
	return nil
}

func (s *Sanity) mutate(ctx context.Context, mutation map[string]any) (mutateResponse, error) {
	var (
		result  mutateResponse
		failure errorResponse
	)
	resp, err := s.write.R().
		SetContext(ctx).
		SetQueryParam("returnIds", "true").
		SetQueryParam("visibility", "sync").
		SetBody(mutateRequest{Mutations: []map[string]any{mutation}}).
		SetResult(&result).
		SetError(&failure).
		Post(fmt.Sprintf("/%s/data/mutate/%s", s.version, s.dataset))
	if err != nil {
		return mutateResponse{}, err
	}
	if resp.IsError() {
		return mutateResponse{}, apiError(resp.StatusCode(), failure)
	}
	return result, nil
}

func apiError(status int, body errorResponse) *APIError {
	e := &APIError{StatusCode: status, Description: body.Message}

	var detail struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	var label string
	switch {
	case json.Unmarshal(body.Error, &detail) == nil:
		e.Type = detail.Type
		if detail.Description != "" {
			e.Description = detail.Description
		}
	case json.Unmarshal(body.Error, &label) == nil:
		e.Type = label
	}
	return e
}

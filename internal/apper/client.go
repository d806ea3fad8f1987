// Package apper is a thin client for the Apper table API, the generic record
// store the remote-backed issue store delegates to. It knows nothing about
// issues: callers address named tables and exchange untyped records.
package apper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trackflow/trackflow/backend/internal/config"
	"github.com/trackflow/trackflow/backend/pkg/logger"
)

// ErrRequest marks any failed call: transport error, non-2xx status, or a
// non-success response envelope. The core never retries; that is a caller
// decision.
var ErrRequest = errors.New("apper request failed")

// Record is one row of a table, keyed by field name.
type Record map[string]interface{}

// Condition operators understood by the table API.
const (
	OpContains = "Contains"
	OpEqualTo  = "EqualTo"
)

// Sort directions.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// Condition restricts a fetch to records whose field matches the value.
type Condition struct {
	FieldName string        `json:"fieldName"`
	Operator  string        `json:"operator"`
	Values    []interface{} `json:"values"`
}

// OrderBy sorts fetched records by a field.
type OrderBy struct {
	FieldName string `json:"fieldName"`
	SortType  string `json:"sorttype"`
}

// Query is the filter payload for Fetch. Conditions compose by intersection.
type Query struct {
	Fields  []string    `json:"fields,omitempty"`
	Where   []Condition `json:"where,omitempty"`
	OrderBy []OrderBy   `json:"orderBy,omitempty"`
	Limit   int         `json:"limit,omitempty"`
	Offset  int         `json:"offset,omitempty"`
}

// envelope is the table API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Results []OpResult      `json:"results"`
}

// OpResult reports the outcome of one record in a bulk create/update/delete.
type OpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    Record `json:"data"`
}

// Client talks to one Apper project's table API.
type Client struct {
	baseURL    string
	apiKey     string
	projectID  string
	httpClient *http.Client
}

func NewClient(cfg *config.ApperConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		projectID:  cfg.ProjectID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %w", ErrRequest, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.projectID != "" {
		req.Header.Set("X-Apper-Project", c.projectID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("apper request rejected")
		return nil, fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrRequest, err)
	}
	if !env.Success {
		logger.Error().
			Str("method", method).
			Str("path", path).
			Str("message", env.Message).
			Msg("apper operation failed")
		return nil, fmt.Errorf("%w: %s", ErrRequest, env.Message)
	}
	return &env, nil
}

// Fetch returns the records of table matching q.
func (c *Client) Fetch(table string, q Query) ([]Record, error) {
	env, err := c.do(http.MethodPost, "/tables/"+table+"/query", q)
	if err != nil {
		return nil, err
	}
	var records []Record
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, fmt.Errorf("%w: decode records: %w", ErrRequest, err)
		}
	}
	return records, nil
}

// GetByID returns one record, or (nil, nil) when the id does not exist in the
// table. Absence is not a backend failure; the caller decides what it means.
func (c *Client) GetByID(table string, id uint) (Record, error) {
	env, err := c.do(http.MethodGet, fmt.Sprintf("/tables/%s/records/%d", table, id), nil)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	var record Record
	if err := json.Unmarshal(env.Data, &record); err != nil {
		return nil, fmt.Errorf("%w: decode record: %w", ErrRequest, err)
	}
	return record, nil
}

// Create inserts records and returns the per-record outcomes.
func (c *Client) Create(table string, records []Record) ([]OpResult, error) {
	env, err := c.do(http.MethodPost, "/tables/"+table+"/records", map[string]interface{}{
		"records": records,
	})
	if err != nil {
		return nil, err
	}
	return env.Results, nil
}

// Update modifies records in place; each record must carry its id.
func (c *Client) Update(table string, records []Record) ([]OpResult, error) {
	env, err := c.do(http.MethodPut, "/tables/"+table+"/records", map[string]interface{}{
		"records": records,
	})
	if err != nil {
		return nil, err
	}
	return env.Results, nil
}

// Delete removes records by id and returns the per-record outcomes.
func (c *Client) Delete(table string, ids []uint) ([]OpResult, error) {
	env, err := c.do(http.MethodDelete, "/tables/"+table+"/records", map[string]interface{}{
		"recordIds": ids,
	})
	if err != nil {
		return nil, err
	}
	return env.Results, nil
}

package worker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

// RenderRequest is the JSON payload of a work stream message's data field
type RenderRequest struct {
	ID       string          `json:"id"`
	Template string          `json:"template"`
	Vars     json.RawMessage `json:"vars,omitempty"`
	Strict   *bool           `json:"strict,omitempty"`
}

// RenderResult is published to the result stream for a successful render
type RenderResult struct {
	ID        string    `json:"id"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// RenderFailure is published to the error stream for a failed render
type RenderFailure struct {
	ID        string    `json:"id"`
	Error     string    `json:"error"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// kindInvalidRequest labels failures that happen before rendering starts
const kindInvalidRequest = "invalid_request"

// Renderer renders a template against variables
type Renderer interface {
	Exec(templateStr string, data value.Value, strict bool) (string, error)
}

// requestError marks a request that could not be decoded
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// parseRenderRequest parses a render request from a Redis message. Requests
// without an id are given one.
func parseRenderRequest(values map[string]interface{}) (*RenderRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request RenderRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal render request: %w", err)
	}

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	return &request, nil
}

// render executes one request. strict is the worker default, which the
// request may override.
func render(renderer Renderer, request *RenderRequest, strict bool) (*RenderResult, error) {
	data := value.Map(nil)
	if len(request.Vars) > 0 && string(request.Vars) != "null" {
		parsed, err := value.ParseJSON(request.Vars)
		if err != nil {
			return nil, &requestError{err: fmt.Errorf("invalid vars: %w", err)}
		}
		data = parsed
	}

	if request.Strict != nil {
		strict = *request.Strict
	}

	output, err := renderer.Exec(request.Template, data, strict)
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		ID:        request.ID,
		Output:    output,
		Timestamp: time.Now().UTC(),
	}, nil
}

// newFailure describes a failed request for the error stream
func newFailure(id string, err error) *RenderFailure {
	kind := kindInvalidRequest
	if k := helper.KindOf(err); k != 0 {
		kind = k.String()
	}

	return &RenderFailure{
		ID:        id,
		Error:     err.Error(),
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	}
}

// Package api provides typed wrappers over the backend's REST resources.
// Every wrapper routes through the gateway; none of them talk HTTP directly.
package api

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/gateway"
)

// Doer dispatches a request through the gateway pipeline.
type Doer interface {
	Do(ctx context.Context, req gateway.Request) (*gateway.Response, error)
}

// envelope is the backend's uniform success wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeData unwraps the response envelope into out. A 2xx response with
// success=false is treated as a validation rejection carrying the server's
// message. out may be nil when the caller only cares about success.
func decodeData(resp *gateway.Response, out any) error {
	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, fmt.Errorf("decoding response envelope: %w", err))
	}
	if !env.Success {
		message := env.Message
		if message == "" {
			message = "Request failed"
		}
		return apperrors.WithStatus(apperrors.ErrValidation, message, resp.StatusCode)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, fmt.Errorf("decoding response data: %w", err))
	}
	return nil
}

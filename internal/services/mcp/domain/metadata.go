package domain

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/louisbranch/rollson/internal/platform/errors"
	"github.com/louisbranch/rollson/internal/platform/id"
)

// InvocationIDKey is the result metadata key carrying the invocation identifier.
const InvocationIDKey = "x-rollson-invocation-id"

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResultWithInvocation builds a tool result carrying the invocation ID.
func CallToolResultWithInvocation(invocationID string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Meta: map[string]any{InvocationIDKey: invocationID},
	}
}

// localizedError presents a domain error in the caller's locale while keeping
// the original error in the chain.
type localizedError struct {
	message string
	err     error
}

func (e *localizedError) Error() string {
	return e.message
}

func (e *localizedError) Unwrap() error {
	return e.err
}

func localize(err error, locale string) error {
	if err == nil {
		return nil
	}
	return &localizedError{message: apperrors.LocalizedMessage(err, locale), err: err}
}

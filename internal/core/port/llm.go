package port

import "context"

// LLM sends one system instruction and one user message and returns the
// model's raw text reply.
type LLM interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

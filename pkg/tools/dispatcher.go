package tools

import (
	"context"
	"log"
)

// TaskFunc defines a function executed asynchronously.
type TaskFunc func(ctx context.Context) error

// Dispatch runs the task in a separate goroutine. Fire-and-forget; failures
// only end up in the log under the given name.
func Dispatch(ctx context.Context, name string, fn TaskFunc) {
	go func() {
		if err := fn(ctx); err != nil {
			log.Printf("[WARN] task %s failed: %v", name, err)
		}
	}()
}

package checkpoint

import "errors"

var (
	// ErrInvalidParameter marks malformed sampling inputs. It is surfaced
	// immediately and never retried.
	ErrInvalidParameter = errors.New("checkpoint: invalid sampling parameter")

	// ErrAborted marks a run cancelled before the full window was folded.
	// A partial checkpoint is meaningless, so nothing is emitted.
	ErrAborted = errors.New("checkpoint: run aborted")
)

package tasks

import "errors"

// ErrUnexpectedStatus indicates a task was resolved while in a non-terminal state.
var ErrUnexpectedStatus = errors.New("unexpected task status")

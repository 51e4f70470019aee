package tasks

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/paperless/pkg/codec"
)

// Status is the state of a server-side task. It is serialized by name.
type Status string

const (
	Pending Status = "PENDING"
	Started Status = "STARTED"
	Success Status = "SUCCESS"
	Failure Status = "FAILURE"
)

var statusValues = map[Status]int{
	Pending: 1,
	Started: 2,
	Success: 3,
	Failure: 4,
}

// Value returns the numeric identifier of the status, or 0 for states this client does not know.
func (s Status) Value() int {
	return statusValues[s]
}

// IsCompleted reports whether the task has reached a terminal state.
func (s Status) IsCompleted() bool {
	return s == Success || s == Failure
}

// Task is an asynchronous job tracked by the server, such as a document import.
type Task struct {
	ID              int               `json:"id"`
	TaskID          uuid.UUID         `json:"task_id"`
	FileName        *string           `json:"task_file_name,omitempty"`
	Created         codec.Timestamp   `json:"date_created"`
	Done            *codec.Timestamp  `json:"date_done,omitempty"`
	Type            *string           `json:"type,omitempty"`
	Status          Status            `json:"status"`
	Result          *string           `json:"result,omitempty"`
	Acknowledged    bool              `json:"acknowledged"`
	RelatedDocument *codec.LenientInt `json:"related_document,omitempty"`
}

// DocumentID returns the id of the document the task produced, if any.
func (t *Task) DocumentID() (int, bool) {
	if t.RelatedDocument == nil {
		return 0, false
	}
	return t.RelatedDocument.Int(), true
}

// ResultMessage returns the server's result text, or an empty string.
func (t *Task) ResultMessage() string {
	if t.Result == nil {
		return ""
	}
	return *t.Result
}

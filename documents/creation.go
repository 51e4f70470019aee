package documents

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/JaimeStill/paperless/tasks"
)

// Creation is an upload of a new document. Only Document and FileName are required;
// nil metadata members are not sent.
type Creation struct {
	Document            io.Reader
	FileName            string
	Created             *time.Time
	Title               *string
	Correspondent       *int
	DocumentType        *int
	StoragePath         *int
	Tags                []int
	ArchiveSerialNumber *int
}

// CreationResult is the outcome of an upload: Created, ImportStarted, or ImportFailed.
type CreationResult interface {
	creationResult()
}

// Created reports the id of the document the import produced.
type Created struct {
	ID int
}

// ImportStarted reports that the server accepted the upload but does not expose its task,
// which is the behavior of servers up to version 1.9.2.
type ImportStarted struct{}

// ImportFailed reports that the server-side import did not produce a document.
type ImportFailed struct {
	Message string
}

func (Created) creationResult()       {}
func (ImportStarted) creationResult() {}
func (ImportFailed) creationResult()  {}

// MessageTaskNotFound is the ImportFailed message used when the import task disappears.
const MessageTaskNotFound = "task not found"

// Resolve maps a terminal task to a result. A related document id is authoritative
// regardless of status; success without one is reported as a failure.
func Resolve(task *tasks.Task) (CreationResult, error) {
	if task == nil {
		return ImportFailed{Message: MessageTaskNotFound}, nil
	}

	if id, ok := task.DocumentID(); ok {
		return Created{ID: id}, nil
	}

	switch task.Status {
	case tasks.Success:
		return ImportFailed{
			Message: fmt.Sprintf("task %s succeeded without a related document", task.TaskID),
		}, nil
	case tasks.Failure:
		return ImportFailed{Message: task.ResultMessage()}, nil
	default:
		return nil, fmt.Errorf("%w: task %s is %s", tasks.ErrUnexpectedStatus, task.TaskID, task.Status)
	}
}

func (c *Creation) encode() (*bytes.Buffer, string, error) {
	if c.Document == nil {
		return nil, "", fmt.Errorf("document content required")
	}
	if c.FileName == "" {
		return nil, "", fmt.Errorf("file name required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("document", c.FileName)
	if err != nil {
		return nil, "", fmt.Errorf("create document part: %w", err)
	}
	if _, err := io.Copy(part, c.Document); err != nil {
		return nil, "", fmt.Errorf("copy document: %w", err)
	}

	fields := make([][2]string, 0, 6+len(c.Tags))
	if c.Created != nil {
		fields = append(fields, [2]string{"created", c.Created.UTC().Format(time.RFC3339)})
	}
	if c.Title != nil {
		fields = append(fields, [2]string{"title", *c.Title})
	}
	if c.Correspondent != nil {
		fields = append(fields, [2]string{"correspondent", strconv.Itoa(*c.Correspondent)})
	}
	if c.DocumentType != nil {
		fields = append(fields, [2]string{"document_type", strconv.Itoa(*c.DocumentType)})
	}
	if c.StoragePath != nil {
		fields = append(fields, [2]string{"storage_path", strconv.Itoa(*c.StoragePath)})
	}
	for _, tag := range c.Tags {
		fields = append(fields, [2]string{"tags", strconv.Itoa(tag)})
	}
	if c.ArchiveSerialNumber != nil {
		fields = append(fields, [2]string{"archive_serial_number", strconv.Itoa(*c.ArchiveSerialNumber)})
	}

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write %s: %w", f[0], err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

package clients

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// WriterMailer prints emails instead of sending them. Used for dry runs.
type WriterMailer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterMailer creates a mailer that writes to w
func NewWriterMailer(w io.Writer) *WriterMailer {
	return &WriterMailer{w: w}
}

// Send writes the headers and body and returns a synthetic ID
func (m *WriterMailer) Send(ctx context.Context, email Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := "dry-run-" + uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := fmt.Fprintf(m.w, "From: %s\nTo: %s\nSubject: %s\nX-Dry-Run-Id: %s\n\n%s\n",
		email.From, strings.Join(email.To, ", "), email.Subject, id, email.Text)
	if err != nil {
		return "", fmt.Errorf("failed to write email: %w", err)
	}
	return id, nil
}

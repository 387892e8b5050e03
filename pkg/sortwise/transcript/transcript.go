// Package transcript records chat sessions to timestamped log files so
// conversations can be reviewed after the fact.
package transcript

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
)

// Writer appends one session's turns to a log file. Appends are
// best-effort: a failed write must never take down the chat loop.
type Writer struct {
	id   string
	path string
	f    *os.File
}

// New opens a fresh transcript file chat_<ulid>.txt under dir,
// creating dir if needed.
func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}

	id := ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String()
	path := filepath.Join(dir, "chat_"+id+".txt")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}

	return &Writer{id: id, path: path, f: f}, nil
}

// ID returns the session identifier.
func (w *Writer) ID() string { return w.id }

// Path returns the transcript file location.
func (w *Writer) Path() string { return w.path }

// Append writes one turn. Errors are swallowed; logging must not
// interrupt the conversation.
func (w *Writer) Append(speaker, text string) {
	if w == nil || w.f == nil {
		return
	}
	ts := time.Now().Format(time.RFC3339)
	fmt.Fprintf(w.f, "[%s] %s: %s\n", ts, speaker, text)
}

// Close flushes and closes the transcript file.
func (w *Writer) Close() error {
	if w == nil || w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

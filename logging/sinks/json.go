package sinks

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"marble-race/server/logging"
)

// JSONSink appends one JSON object per line, suitable for replay tooling
// or offline analysis.
type JSONSink struct {
	mu     sync.Mutex
	writer io.Writer
	closer io.Closer
}

// NewJSONSink opens (or creates) the file at path for appending.
func NewJSONSink(cfg logging.JSONConfig) (*JSONSink, error) {
	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONSink{writer: file, closer: file}, nil
}

// NewJSONSinkWriter wraps an arbitrary writer, mostly for tests.
func NewJSONSinkWriter(w io.Writer) *JSONSink {
	return &JSONSink{writer: w}
}

func (s *JSONSink) Write(event logging.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.writer.Write(data)
	return err
}

func (s *JSONSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

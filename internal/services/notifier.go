package services

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// WriterNotifier prints alerts as lines on a writer. Permission is always granted.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a notifier that writes to w
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// RequestPermission always grants
func (n *WriterNotifier) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

// Notify writes "title: body"
func (n *WriterNotifier) Notify(_ context.Context, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.w, "%s: %s\n", title, body)
	return err
}

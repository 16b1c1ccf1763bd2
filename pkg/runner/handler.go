package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/tracetm/internal/presentation/trace"
)

// Handler receives the results of a batch, one call per input in input order.
type Handler interface {
	Handle(ctx context.Context, res Result) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, res Result) error

func (f HandlerFunc) Handle(ctx context.Context, res Result) error {
	return f(ctx, res)
}

// TextHandler writes the plain-text trace block of each result.
type TextHandler struct {
	Writer io.Writer
}

// NewTextHandler creates a handler writing to w (stdout when nil).
func NewTextHandler(w io.Writer) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{Writer: w}
}

func (h *TextHandler) Handle(ctx context.Context, res Result) error {
	return trace.WriteResult(h.Writer, res.Input, res.Verdict, res.Err)
}

// JSONHandler writes each result as one JSON line.
type JSONHandler struct {
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON-Lines output (stdout when nil).
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

func (h *JSONHandler) Handle(ctx context.Context, res Result) error {
	return h.Encoder.Encode(res)
}

// MultiHandler fans every result out to several handlers, stopping at the first error.
func MultiHandler(handlers ...Handler) Handler {
	return HandlerFunc(func(ctx context.Context, res Result) error {
		for _, h := range handlers {
			if err := h.Handle(ctx, res); err != nil {
				return err
			}
		}
		return nil
	})
}

package parseerr

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Error is one reported parse error: a code, its resolved message, and
// the input position the tokenizer or tree constructor was at when it
// noticed.
type Error struct {
	Code    Code
	Message string
	Line    int
	Column  int
}

func (e Error) String() string {
	return fmt.Sprintf("%d:%d: %s (%s)", e.Line, e.Column, e.Message, e.Code)
}

// Sink receives parse errors as they are produced. Implementations must
// be safe to call from a single parse goroutine repeatedly; htmlcore never
// calls a Sink concurrently from more than one goroutine.
type Sink interface {
	Report(err Error)
}

// New constructs an Error from a code and position and fills in Message
// from the code's registered text.
func New(code Code, line, column int) Error {
	return Error{Code: code, Message: Message(code), Line: line, Column: column}
}

// writerSink writes one line per error to an io.Writer, guarded by a
// mutex so a Parse running alongside other logging doesn't interleave
// partial lines.
type writerSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterSink returns a Sink that writes each error as a single
// "Parser error: …" line to w.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{out: w}
}

func (s *writerSink) Report(err Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "Parser error: %s\n", err.String())
}

// DefaultSink writes to os.Stderr. Parse reports to it only when it is
// passed with WithErrorSink; with no sink option, Parse discards errors
// unless WithStrictMode or WithCollectErrors is set.
var DefaultSink Sink = NewWriterSink(os.Stderr)

// CollectingSink accumulates every reported error in memory, for callers
// that want the full list rather than a stream (htmlcore's
// WithCollectErrors option).
type CollectingSink struct {
	mu     sync.Mutex
	Errors []Error
}

// NewCollectingSink returns an empty CollectingSink.
func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

func (s *CollectingSink) Report(err Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, err)
}

// discardSink ignores every error reported to it.
type discardSink struct{}

func (discardSink) Report(Error) {}

// Discard is a Sink that drops every error.
var Discard Sink = discardSink{}

// Errors is the collection WithCollectErrors returns: every parse error a
// CollectingSink accumulated over one parse, in report order.
type Errors []Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no parse errors"
	}
	if len(e) == 1 {
		return e[0].String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d parse errors:\n", len(e))
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  - ")
		sb.WriteString(err.String())
	}
	return sb.String()
}

// Unwrap supports errors.Is/As over the individual reported errors.
func (e Errors) Unwrap() []error {
	errs := make([]error, len(e))
	for i := range e {
		errs[i] = e[i]
	}
	return errs
}

func (e Error) Error() string {
	return e.String()
}

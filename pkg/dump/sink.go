package dump

import (
	"fmt"
	"io"
)

// Sink receives human-readable progress and error lines during a conversion.
// The host decides what a sink is: the CLI styles lines onto stderr, tests
// collect them in a buffer. Show makes the sink visible to the user; sinks
// that are always visible implement it as a no-op.
type Sink interface {
	WriteLine(line string)
	Show()
}

// WriterSink is a Sink that prints each line to an io.Writer. Show is a no-op.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) WriteLine(line string) { fmt.Fprintln(s.W, line) }

func (s WriterSink) Show() {}

package provisioning

import (
	"io"
	"os"

	fcolor "github.com/fatih/color"
)

// Observer is the console protocol for the pipeline: four severities, each
// with a distinct visual prefix. Messages are for the operator, nothing in
// the pipeline parses them.
type Observer interface {
	// Infof reports progress.
	Infof(format string, args ...any)

	// Successf reports a completed step.
	Successf(format string, args ...any)

	// Warningf reports a non-fatal anomaly.
	Warningf(format string, args ...any)

	// Errorf reports a fatal condition.
	Errorf(format string, args ...any)
}

// ConsoleObserver writes colored, symbol-prefixed messages to a writer.
type ConsoleObserver struct {
	writer io.Writer

	info    *fcolor.Color
	success *fcolor.Color
	warning *fcolor.Color
	err     *fcolor.Color
}

// NewConsoleObserver creates a console observer writing to w. A nil writer
// defaults to stdout.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	if w == nil {
		w = os.Stdout
	}

	return &ConsoleObserver{
		writer:  w,
		info:    fcolor.New(fcolor.FgBlue),
		success: fcolor.New(fcolor.FgGreen),
		warning: fcolor.New(fcolor.FgYellow),
		err:     fcolor.New(fcolor.FgRed),
	}
}

// Infof implements Observer.
func (o *ConsoleObserver) Infof(format string, args ...any) {
	_, _ = o.info.Fprintf(o.writer, "ℹ "+format+"\n", args...)
}

// Successf implements Observer.
func (o *ConsoleObserver) Successf(format string, args ...any) {
	_, _ = o.success.Fprintf(o.writer, "✔ "+format+"\n", args...)
}

// Warningf implements Observer.
func (o *ConsoleObserver) Warningf(format string, args ...any) {
	_, _ = o.warning.Fprintf(o.writer, "⚠ "+format+"\n", args...)
}

// Errorf implements Observer.
func (o *ConsoleObserver) Errorf(format string, args ...any) {
	_, _ = o.err.Fprintf(o.writer, "✗ "+format+"\n", args...)
}

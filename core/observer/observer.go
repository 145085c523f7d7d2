package observer

import (
	"bufio"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Observer receives progress and error lines from core operations.
type Observer interface {
	// Status emits a primary status line.
	Status(line string)
	// Log emits a detail line. refresh asks the front end to flush its output.
	Log(line string, refresh bool)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Status(string)    {}
func (Nop) Log(string, bool) {}

// Writer prints lines to an io.Writer through a buffer.
// Status lines always flush; log lines flush only when refresh is set.
type Writer struct {
	mu        sync.Mutex
	buf       *bufio.Writer
	logPrefix string
}

// NewWriter creates a Writer. Detail lines are prefixed with logPrefix.
func NewWriter(w io.Writer, logPrefix string) *Writer {
	return &Writer{buf: bufio.NewWriter(w), logPrefix: logPrefix}
}

func (w *Writer) Status(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.buf.WriteString(line + "\n")
	_ = w.buf.Flush()
}

func (w *Writer) Log(line string, refresh bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.buf.WriteString(w.logPrefix + line + "\n")
	if refresh {
		_ = w.buf.Flush()
	}
}

// Flush writes any buffered detail lines.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Flush()
}

// Zap forwards status lines at info level and detail lines at debug level.
type Zap struct {
	logger *zap.Logger
}

// NewZap creates a zap-backed observer.
func NewZap(l *zap.Logger) *Zap {
	return &Zap{logger: l}
}

func (z *Zap) Status(line string) {
	z.logger.Info(line)
}

func (z *Zap) Log(line string, _ bool) {
	z.logger.Debug(line)
}

// Recorder keeps every line in memory.
type Recorder struct {
	mu       sync.Mutex
	statuses []string
	logs     []string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{statuses: []string{}, logs: []string{}}
}

func (r *Recorder) Status(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, line)
}

func (r *Recorder) Log(line string, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, line)
}

// Statuses returns a copy of the recorded status lines.
func (r *Recorder) Statuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statuses...)
}

// Logs returns a copy of the recorded detail lines.
func (r *Recorder) Logs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.logs...)
}

type multi []Observer

// Multi returns an observer that forwards every line to each of obs in order.
func Multi(obs ...Observer) Observer {
	return multi(obs)
}

func (m multi) Status(line string) {
	for _, o := range m {
		o.Status(line)
	}
}

func (m multi) Log(line string, refresh bool) {
	for _, o := range m {
		o.Log(line, refresh)
	}
}

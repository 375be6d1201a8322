// Package errors reports user-facing messages and classifies backend failures.
package errors

import "sync"

// Handler reports messages to the user.
// Different implementations render them differently (console, TUI footer).
type Handler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// Output is the sink the CLI handler prints to.
type Output interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through an Output and counts reported errors so
// commands can decide their exit status.
type CLIHandler struct {
	out      Output
	mu       sync.Mutex
	failures int
}

var _ Handler = (*CLIHandler)(nil)

// NewCLIHandler creates a handler printing to out.
func NewCLIHandler(out Output) *CLIHandler {
	return &CLIHandler{out: out}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	h.failures++
	h.mu.Unlock()
	h.out.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.out.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.out.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.out.Success(msg)
}

// Failures returns how many errors were reported.
func (h *CLIHandler) Failures() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failures
}

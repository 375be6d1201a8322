package errors

import "github.com/cristianoliveira/courtside/internal/colors"

// OutputFuncs routes each message kind to a print function. A nil entry drops
// messages of that kind.
type OutputFuncs struct {
	ErrorFn   func(msgs ...string)
	WarningFn func(msgs ...string)
	InfoFn    func(msgs ...string)
	SuccessFn func(msgs ...string)
}

var _ Output = OutputFuncs{}

func (o OutputFuncs) Error(msgs ...string)   { emit(o.ErrorFn, msgs) }
func (o OutputFuncs) Warning(msgs ...string) { emit(o.WarningFn, msgs) }
func (o OutputFuncs) Info(msgs ...string)    { emit(o.InfoFn, msgs) }
func (o OutputFuncs) Success(msgs ...string) { emit(o.SuccessFn, msgs) }

func emit(fn func(msgs ...string), msgs []string) {
	if fn != nil {
		fn(msgs...)
	}
}

// ColorsOutput prints every kind through the colors package.
func ColorsOutput() OutputFuncs {
	return OutputFuncs{
		ErrorFn:   colors.Error,
		WarningFn: colors.Warning,
		InfoFn:    colors.Info,
		SuccessFn: colors.Success,
	}
}

// NewDefaultCLIHandler creates a CLI handler printing through ColorsOutput.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(ColorsOutput())
}

package emulator

import (
	"github.com/XwanXuanX/Misim/translate"
)

var f = translate.From

// ErrProgram indicates a program image that failed to load or run.
type ErrProgram struct {
	Err error
}

func (err *ErrProgram) Error() string {
	return f("program: %v", err.Err)
}

func (err *ErrProgram) Unwrap() error {
	return err.Err
}

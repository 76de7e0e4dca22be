// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"

	"github.com/ezrec/bfc/compiler"
	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	ErrTapeBounds = errors.New(f("cursor outside tape"))
	ErrTickLimit  = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	compiler.Position
	Op  compiler.Op
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("%v: '%v' %v", err.Position, err.Op, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

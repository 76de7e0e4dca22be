// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

import (
	"errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	ErrCloseWithoutOpen = errors.New(f("close without open"))
	ErrOpenWithoutClose = errors.New(f("open without close"))
)

// Position of a character in the source.
type Position struct {
	Offset int // Byte offset, from 0.
	Line   int // Line, from 1.
	Column int // Column in runes, from 1.
}

func (pos Position) String() string {
	return f("%d:%d", pos.Line, pos.Column)
}

// ErrSyntax is an unbalanced loop bracket.
type ErrSyntax struct {
	Position
	Err error
}

func (err ErrSyntax) Error() string {
	return f("%v: syntax error: %v", err.Position, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

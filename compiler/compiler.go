// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
)

// Compiler is a single pass Brainfuck to assembly translator.
type Compiler struct {
	Verbose bool         // If set, logs loop matching at debug level.
	Logger  *slog.Logger // Logger for verbose output; slog.Default() if nil.

	State  State  // State of the last translation.
	Labels Labels // Loop label allocator.

	opens []Position // Source position of each open loop.
}

func (comp *Compiler) log() *slog.Logger {
	if comp.Logger == nil {
		return slog.Default()
	}
	return comp.Logger
}

// Reset the translation state.
func (comp *Compiler) Reset() {
	comp.State = STATE_TRANSLATING
	comp.Labels.Reset()
	comp.opens = comp.opens[:0]
}

// Preamble writes the fixed assembly header.
func (comp *Compiler) Preamble(w io.Writer) (err error) {
	_, err = io.WriteString(w, Preamble)
	return
}

// Translate appends the assembly for the source in r to w, followed by the
// process exit trailer.
//
// An unbalanced bracket stops translation with an ErrSyntax, and the
// trailer is not written. Read and write errors leave the state at
// STATE_FAILED. Output already written to w is left for the
// caller to discard.
func (comp *Compiler) Translate(r io.Reader, w io.Writer) (err error) {
	comp.Reset()

	defer func() {
		var syntax ErrSyntax
		switch {
		case err == nil:
			comp.State = STATE_DONE
		case errors.As(err, &syntax):
			comp.State = STATE_SYNTAX_ERROR
		default:
			comp.State = STATE_FAILED
		}
	}()

	sc := NewScanner(r)
	out := bufio.NewWriter(w)

	for {
		var op Op
		var here Position
		op, here, err = sc.Next()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}

		var id int
		switch op {
		case OP_LOOP:
			id = comp.Labels.Allocate()
			comp.opens = append(comp.opens, here)
			if comp.Verbose {
				comp.log().Debug("loop open", "id", id, "pos", here.String())
			}
		case OP_POOL:
			var ok bool
			id, ok = comp.Labels.Retire()
			if !ok {
				err = ErrSyntax{Position: here, Err: ErrCloseWithoutOpen}
				return
			}
			comp.opens = comp.opens[:len(comp.opens)-1]
			if comp.Verbose {
				comp.log().Debug("loop close", "id", id, "pos", here.String())
			}
		}

		_, err = out.WriteString(Block(op, id))
		if err != nil {
			return
		}
	}

	if !comp.Labels.Empty() {
		err = ErrSyntax{Position: comp.opens[len(comp.opens)-1], Err: ErrOpenWithoutClose}
		return
	}

	_, err = out.WriteString(Trailer)
	if err != nil {
		return
	}

	err = out.Flush()

	return
}

// Compile writes the preamble, then the translation of r, to w.
func (comp *Compiler) Compile(r io.Reader, w io.Writer) (err error) {
	err = comp.Preamble(w)
	if err != nil {
		comp.Reset()
		comp.State = STATE_FAILED
		return
	}

	err = comp.Translate(r, w)

	return
}

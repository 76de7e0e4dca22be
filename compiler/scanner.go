// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

import (
	"bufio"
	"io"
)

// Scanner reads instructions from Brainfuck source, one character at a
// time, skipping comment characters.
type Scanner struct {
	in  *bufio.Reader
	pos Position
}

// NewScanner returns a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		in:  bufio.NewReader(r),
		pos: Position{Line: 1, Column: 1},
	}
}

// Next returns the next instruction and its position.
// At the end of the source, err is io.EOF.
func (sc *Scanner) Next() (op Op, pos Position, err error) {
	for {
		var ch rune
		var size int
		ch, size, err = sc.in.ReadRune()
		if err != nil {
			return
		}

		pos = sc.pos
		sc.pos.Offset += size
		if ch == '\n' {
			sc.pos.Line++
			sc.pos.Column = 1
		} else {
			sc.pos.Column++
		}

		var ok bool
		op, ok = OpOf(ch)
		if ok {
			return
		}
	}
}

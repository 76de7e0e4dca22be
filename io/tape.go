package io

import (
	"io"
)

// Tape provides byte-at-a-time I/O for a running Brainfuck program.
// It wraps an io.Reader for input and an io.Writer for output, with a one
// byte staging cell between the input and the program.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	lastInput byte
}

// Receive reads one byte into the staging cell and returns it.
//
// At end of input the staging cell is left unchanged, as a zero length
// read(2) would leave it.
func (tc *Tape) Receive() (value byte, err error) {
	if tc.Input != nil {
		var one [1]byte
		var n int
		n, err = tc.Input.Read(one[:])
		if n == 1 {
			tc.lastInput = one[0]
		}
		if err == io.EOF {
			err = nil
		}
	}

	value = tc.lastInput

	return
}

// Send writes one byte to the output stream.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = tc.Output.Write([]byte{value})

	return
}

// Rewind clears the staging cell.
func (tc *Tape) Rewind() {
	tc.lastInput = 0
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs Brainfuck programs directly, on the same machine
// model as the code emitted by package compiler.
package emulator

import (
	"errors"
	"io"
	"log/slog"

	"github.com/ezrec/bfc/compiler"
	bfio "github.com/ezrec/bfc/io"
)

// Emulator state. Tape cells, cursor and I/O.
type Emulator struct {
	Verbose bool         // If set, logs every tick at debug level.
	Logger  *slog.Logger // Logger for verbose output; slog.Default() if nil.

	Program   []compiler.Op       // Loaded instructions.
	Positions []compiler.Position // Source position of each instruction.

	Tape   bfio.Tape                 // Input and output streams.
	Cells  [compiler.TAPE_SIZE]uint8 // Tape cells.
	Cursor int                       // Current cell index.
	Ip     int                       // Index of the next instruction.
	Ticks  int                       // Instructions executed since Reset.

	jump []int // Index of the matching bracket, for loop instructions.
}

// NewEmulator creates a new emulator with no program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{}
	emu.Reset()

	return
}

func (emu *Emulator) log() *slog.Logger {
	if emu.Logger == nil {
		return slog.Default()
	}
	return emu.Logger
}

// Load replaces the program with the source read from r, and resets.
// Unbalanced brackets are reported as a compiler.ErrSyntax, identical to
// the one the compiler reports for the same source.
func (emu *Emulator) Load(r io.Reader) (err error) {
	var program []compiler.Op
	var positions []compiler.Position
	var jump []int
	var opens []int

	sc := compiler.NewScanner(r)
	for {
		var op compiler.Op
		var pos compiler.Position
		op, pos, err = sc.Next()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}

		ip := len(program)
		program = append(program, op)
		positions = append(positions, pos)
		jump = append(jump, ip)

		switch op {
		case compiler.OP_LOOP:
			opens = append(opens, ip)
		case compiler.OP_POOL:
			if len(opens) == 0 {
				err = compiler.ErrSyntax{Position: pos, Err: compiler.ErrCloseWithoutOpen}
				return
			}
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			jump[open] = ip
			jump[ip] = open
		}
	}

	if len(opens) != 0 {
		err = compiler.ErrSyntax{Position: positions[opens[len(opens)-1]], Err: compiler.ErrOpenWithoutClose}
		return
	}

	emu.Program = program
	emu.Positions = positions
	emu.jump = jump
	emu.Reset()

	return
}

// Reset the machine state, keeping the program.
func (emu *Emulator) Reset() {
	clear(emu.Cells[:])
	emu.Cursor = compiler.TAPE_START
	emu.Ip = 0
	emu.Ticks = 0
	emu.Tape.Rewind()
}

// Tick executes a single instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Ip >= len(emu.Program) {
		done = true
		return
	}

	ip := emu.Ip
	op := emu.Program[ip]
	defer func() {
		if err != nil {
			err = &ErrRuntime{Position: emu.Positions[ip], Op: op, Err: err}
		}
	}()

	if emu.Verbose {
		emu.log().Debug("tick", "ip", ip, "op", op.String(), "cursor", emu.Cursor, "cell", emu.Cells[emu.Cursor])
	}

	switch op {
	case compiler.OP_RIGHT:
		if emu.Cursor+1 >= len(emu.Cells) {
			err = ErrTapeBounds
			return
		}
		emu.Cursor++
	case compiler.OP_LEFT:
		if emu.Cursor == 0 {
			err = ErrTapeBounds
			return
		}
		emu.Cursor--
	case compiler.OP_INC:
		emu.Cells[emu.Cursor]++
	case compiler.OP_DEC:
		emu.Cells[emu.Cursor]--
	case compiler.OP_OUTPUT:
		err = emu.Tape.Send(emu.Cells[emu.Cursor])
		if err != nil {
			return
		}
	case compiler.OP_INPUT:
		var value uint8
		value, err = emu.Tape.Receive()
		if err != nil {
			return
		}
		emu.Cells[emu.Cursor] = value
	case compiler.OP_LOOP:
		if emu.Cells[emu.Cursor] == 0 {
			emu.Ip = emu.jump[ip]
		}
	case compiler.OP_POOL:
		if emu.Cells[emu.Cursor] != 0 {
			emu.Ip = emu.jump[ip]
		}
	}

	emu.Ip++
	emu.Ticks++

	return
}

// Run ticks until the program ends. If limit is positive, Run stops with
// ErrTickLimit after that many ticks.
func (emu *Emulator) Run(limit int) (err error) {
	for done := false; !done; {
		if limit > 0 && emu.Ticks >= limit {
			err = ErrTickLimit
			return
		}
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

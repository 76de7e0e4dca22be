// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

// Op is a recognized Brainfuck instruction.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_RIGHT  = Op(iota) // >
	OP_LEFT              // <
	OP_INC               // +
	OP_DEC               // -
	OP_OUTPUT            // .
	OP_INPUT             // ,
	OP_LOOP              // [
	OP_POOL              // ]
)

var opMap = map[rune]Op{
	'>': OP_RIGHT,
	'<': OP_LEFT,
	'+': OP_INC,
	'-': OP_DEC,
	'.': OP_OUTPUT,
	',': OP_INPUT,
	'[': OP_LOOP,
	']': OP_POOL,
}

// OpOf decodes a source character. Characters that are not instructions
// are comments, and return ok == false.
func OpOf(ch rune) (op Op, ok bool) {
	op, ok = opMap[ch]
	return
}

// State of a translation.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_TRANSLATING  = State(iota) // translating
	STATE_SYNTAX_ERROR               // syntax error
	STATE_DONE                       // done
	STATE_FAILED                     // failed
)

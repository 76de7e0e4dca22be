// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

import (
	"fmt"
)

const (
	TAPE_SIZE  = 30000           // Cells on the tape.
	TAPE_START = TAPE_SIZE/2 - 1 // Initial cursor cell.

	SYS_READ  = 0  // read(2)
	SYS_WRITE = 1  // write(2)
	SYS_EXIT  = 60 // exit(2)

	STDIN  = 0
	STDOUT = 1
)

const indent = "        "

// Preamble is the fixed assembly header: tape and input storage, and the
// entry point that places the cursor on TAPE_START and zeroes that cell.
var Preamble = fmt.Sprintf(`.intel_syntax noprefix

.bss
arr:
%[1]s.space %[2]d
input:
%[1]s.space 1

.section .text
%[1]s.global _start

_start:
%[1]slea r12, [arr]
%[1]sadd r12, %[3]d
%[1]smov rdx, 1
%[1]smov byte ptr [r12], 0
`, indent, TAPE_SIZE, TAPE_START)

// Trailer exits the process with status 0.
var Trailer = lines(
	fmt.Sprintf("mov rax, %d", SYS_EXIT),
	"mov rdi, 0",
	"syscall",
)

var blockMap = map[Op]string{
	OP_RIGHT: lines("add r12, 1"),
	OP_LEFT:  lines("sub r12, 1"),
	OP_INC:   lines("add byte ptr [r12], 1"),
	OP_DEC:   lines("sub byte ptr [r12], 1"),
	OP_OUTPUT: lines(
		fmt.Sprintf("mov rax, %d", SYS_WRITE),
		fmt.Sprintf("mov rdi, %d", STDOUT),
		"lea rsi, [r12]",
		"syscall",
	),
	OP_INPUT: lines(
		fmt.Sprintf("mov rax, %d", SYS_READ),
		fmt.Sprintf("mov rdi, %d", STDIN),
		"lea rsi, [input]",
		"syscall",
		"mov cl, [input]",
		"mov [r12], cl",
	),
}

// lines indents each instruction and terminates it with a newline.
func lines(insns ...string) (text string) {
	for _, insn := range insns {
		text += indent + insn + "\n"
	}
	return
}

// EntryLabel is the label text at the top of loop id.
func EntryLabel(id int) string {
	return fmt.Sprintf("l%d", id)
}

// ExitLabel is the label text at the bottom of loop id.
func ExitLabel(id int) string {
	return fmt.Sprintf("le%d", id)
}

// Block returns the assembly for op. The loop id is only used by
// OP_LOOP and OP_POOL.
func Block(op Op, id int) string {
	switch op {
	case OP_LOOP:
		return EntryLabel(id) + ":\n" + lines(
			"movzx ecx, byte ptr [r12]",
			"cmp ecx, 0",
			"je "+ExitLabel(id),
		)
	case OP_POOL:
		return ExitLabel(id) + ":\n" + lines(
			"movzx ecx, byte ptr [r12]",
			"cmp ecx, 0",
			"jne "+EntryLabel(id),
		)
	}

	return blockMap[op]
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package compiler translates Brainfuck source into x86-64 assembly.
//
// The output is GNU as source in Intel syntax for a freestanding Linux
// executable. A 30000 byte tape lives in .bss and register r12 is the cursor,
// starting at the middle of the tape. Each recognized source character is
// translated into one fixed block of instructions; every other character is
// a comment and produces nothing.
//
// Loops are matched with a stack of label identifiers. Each '[' receives the
// smallest identifier that is neither open nor retired, so label text is
// unique across the whole program and depends only on bracket structure.
package compiler

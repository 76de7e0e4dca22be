// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

import (
	"slices"
)

// Labels allocates loop label identifiers.
//
// An identifier is open while its loop is unclosed, and retired once the
// loop is closed. Retired identifiers are never handed out again.
type Labels struct {
	Open []int // Open identifiers, innermost last.

	retired map[int]bool
	next    int // No identifier below next is free.
}

func (l *Labels) used(id int) bool {
	return l.retired[id] || slices.Contains(l.Open, id)
}

// Allocate opens and returns the smallest identifier that is neither open
// nor retired.
func (l *Labels) Allocate() (id int) {
	for l.used(l.next) {
		l.next++
	}

	id = l.next
	l.Open = append(l.Open, id)
	l.next++

	return
}

// Retire closes the innermost open identifier.
func (l *Labels) Retire() (id int, ok bool) {
	id, ok = l.Peek()
	if !ok {
		return
	}

	l.Open = l.Open[:len(l.Open)-1]
	if l.retired == nil {
		l.retired = map[int]bool{}
	}
	l.retired[id] = true

	return
}

// Peek returns the innermost open identifier.
func (l *Labels) Peek() (id int, ok bool) {
	if l.Empty() {
		return
	}

	return l.Open[len(l.Open)-1], true
}

// Empty is true when no loop is open.
func (l *Labels) Empty() bool {
	return len(l.Open) == 0
}

// Retired returns the number of retired identifiers.
func (l *Labels) Retired() int {
	return len(l.retired)
}

func (l *Labels) Reset() {
	l.Open = l.Open[:0]
	l.retired = nil
	l.next = 0
}

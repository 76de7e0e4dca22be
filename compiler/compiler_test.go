package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doCompile(t *testing.T, source string) (text string, err error) {
	comp := &Compiler{}
	out := &bytes.Buffer{}
	err = comp.Compile(strings.NewReader(source), out)
	text = out.String()
	return
}

func TestCompilerEmpty(t *testing.T) {
	assert := assert.New(t)

	for _, source := range []string{"", "\n", "hello world\n", "# comment only\r\n\t"} {
		text, err := doCompile(t, source)
		assert.NoError(err, source)
		assert.Equal(Preamble+Trailer, text, source)
	}
}

func TestCompilerPreamble(t *testing.T) {
	assert := assert.New(t)

	comp := &Compiler{}
	out := &bytes.Buffer{}
	assert.NoError(comp.Preamble(out))

	text := out.String()
	assert.True(strings.HasPrefix(text, ".intel_syntax noprefix\n"))
	assert.Contains(text, "arr:\n        .space 30000\n")
	assert.Contains(text, "input:\n        .space 1\n")
	assert.Contains(text, "        .global _start\n")
	assert.Contains(text, "        lea r12, [arr]\n        add r12, 14999\n")
	assert.True(strings.HasSuffix(text, "        mov byte ptr [r12], 0\n"))
}

func TestCompilerIncOutput(t *testing.T) {
	assert := assert.New(t)

	text, err := doCompile(t, "+++.")
	assert.NoError(err)

	expected := Preamble +
		"        add byte ptr [r12], 1\n" +
		"        add byte ptr [r12], 1\n" +
		"        add byte ptr [r12], 1\n" +
		"        mov rax, 1\n" +
		"        mov rdi, 1\n" +
		"        lea rsi, [r12]\n" +
		"        syscall\n" +
		"        mov rax, 60\n" +
		"        mov rdi, 0\n" +
		"        syscall\n"
	assert.Equal(expected, text)
	assert.NotContains(text, "l0")
}

func TestCompilerEcho(t *testing.T) {
	assert := assert.New(t)

	text, err := doCompile(t, ",[.-]")
	assert.NoError(err)

	expected := Preamble +
		Block(OP_INPUT, 0) +
		"l0:\n" +
		"        movzx ecx, byte ptr [r12]\n" +
		"        cmp ecx, 0\n" +
		"        je le0\n" +
		Block(OP_OUTPUT, 0) +
		Block(OP_DEC, 0) +
		"le0:\n" +
		"        movzx ecx, byte ptr [r12]\n" +
		"        cmp ecx, 0\n" +
		"        jne l0\n" +
		Trailer
	assert.Equal(expected, text)
}

func TestCompilerOps(t *testing.T) {
	assert := assert.New(t)

	table := map[string]string{
		">": "        add r12, 1\n",
		"<": "        sub r12, 1\n",
		"+": "        add byte ptr [r12], 1\n",
		"-": "        sub byte ptr [r12], 1\n",
		",": "        mov rax, 0\n        mov rdi, 0\n        lea rsi, [input]\n        syscall\n        mov cl, [input]\n        mov [r12], cl\n",
	}

	for source, body := range table {
		text, err := doCompile(t, source)
		assert.NoError(err, source)
		assert.Equal(Preamble+body+Trailer, text, source)
	}
}

func TestCompilerComments(t *testing.T) {
	assert := assert.New(t)

	plain, err := doCompile(t, "[>+<-]>.")
	assert.NoError(err)

	commented, err := doCompile(t, "this [ loop > moves + and < counts - ]\n> then prints . done\n")
	assert.NoError(err)

	assert.Equal(plain, commented)
}

func labelsOf(text string) (entries, exits []string) {
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "le") && strings.HasSuffix(line, ":"):
			exits = append(exits, strings.TrimSuffix(strings.TrimPrefix(line, "le"), ":"))
		case strings.HasPrefix(line, "l") && strings.HasSuffix(line, ":"):
			entries = append(entries, strings.TrimSuffix(strings.TrimPrefix(line, "l"), ":"))
		}
	}
	return
}

func TestCompilerBalanced(t *testing.T) {
	assert := assert.New(t)

	for _, source := range []string{"[]", "[[]]", "[][]", "[[][[]]][]", "+[>[-]<[->+<]]"} {
		comp := &Compiler{}
		out := &bytes.Buffer{}
		err := comp.Compile(strings.NewReader(source), out)
		assert.NoError(err, source)
		assert.Equal(STATE_DONE, comp.State, source)

		entries, exits := labelsOf(out.String())
		assert.Equal(strings.Count(source, "["), len(entries), source)
		assert.Equal(len(entries), len(exits), source)
		assert.ElementsMatch(entries, exits, source)

		seen := map[string]bool{}
		for _, id := range entries {
			assert.False(seen[id], "%v: label %v reused", source, id)
			seen[id] = true
		}
	}
}

func TestCompilerNested(t *testing.T) {
	assert := assert.New(t)

	text, err := doCompile(t, "[[]]")
	assert.NoError(err)

	expected := Preamble +
		Block(OP_LOOP, 0) +
		Block(OP_LOOP, 1) +
		Block(OP_POOL, 1) +
		Block(OP_POOL, 0) +
		Trailer
	assert.Equal(expected, text)
}

func TestCompilerSiblings(t *testing.T) {
	assert := assert.New(t)

	text, err := doCompile(t, "[][[]]")
	assert.NoError(err)

	expected := Preamble +
		Block(OP_LOOP, 0) +
		Block(OP_POOL, 0) +
		Block(OP_LOOP, 1) +
		Block(OP_LOOP, 2) +
		Block(OP_POOL, 2) +
		Block(OP_POOL, 1) +
		Trailer
	assert.Equal(expected, text)
}

func TestCompilerDeterministic(t *testing.T) {
	assert := assert.New(t)

	source := "++[>++[>+<-]<-]>>.[comment]"
	first, err := doCompile(t, source)
	assert.NoError(err)

	comp := &Compiler{}
	for range 3 {
		out := &bytes.Buffer{}
		assert.NoError(comp.Compile(strings.NewReader(source), out))
		assert.Equal(first, out.String())
	}
}

func TestCompilerCloseWithoutOpen(t *testing.T) {
	assert := assert.New(t)

	table := map[string]Position{
		"]":        {Offset: 0, Line: 1, Column: 1},
		"[]]":      {Offset: 2, Line: 1, Column: 3},
		"+\n-\n ]": {Offset: 5, Line: 3, Column: 2},
	}

	for source, pos := range table {
		comp := &Compiler{}
		out := &bytes.Buffer{}
		err := comp.Compile(strings.NewReader(source), out)
		assert.ErrorIs(err, ErrCloseWithoutOpen, source)
		assert.Equal(STATE_SYNTAX_ERROR, comp.State, source)

		var syntax ErrSyntax
		assert.True(errors.As(err, &syntax), source)
		assert.Equal(pos, syntax.Position, source)
		assert.NotContains(out.String(), Trailer, source)
	}
}

func TestCompilerOpenWithoutClose(t *testing.T) {
	assert := assert.New(t)

	table := map[string]Position{
		"[":         {Offset: 0, Line: 1, Column: 1},
		"[[]":       {Offset: 0, Line: 1, Column: 1},
		"[]\n[[]\n": {Offset: 3, Line: 2, Column: 1},
		"[\n  [":    {Offset: 4, Line: 2, Column: 3},
	}

	for source, pos := range table {
		comp := &Compiler{}
		out := &bytes.Buffer{}
		err := comp.Compile(strings.NewReader(source), out)
		assert.ErrorIs(err, ErrOpenWithoutClose, source)
		assert.Equal(STATE_SYNTAX_ERROR, comp.State, source)

		var syntax ErrSyntax
		assert.True(errors.As(err, &syntax), source)
		assert.Equal(pos, syntax.Position, source)
		assert.NotContains(out.String(), Trailer, source)
	}
}

func TestCompilerUnicodeColumns(t *testing.T) {
	assert := assert.New(t)

	_, err := doCompile(t, "héllo ]")

	var syntax ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(Position{Offset: 7, Line: 1, Column: 7}, syntax.Position)
	assert.Equal("1:7: syntax error: close without open", err.Error())
}

type failWriter struct {
	after int
}

func (fw *failWriter) Write(data []byte) (n int, err error) {
	if len(data) > fw.after {
		return fw.after, fmt.Errorf("disk full")
	}
	fw.after -= len(data)
	return len(data), nil
}

func TestCompilerWriteError(t *testing.T) {
	assert := assert.New(t)

	comp := &Compiler{}
	err := comp.Compile(strings.NewReader("+"), &failWriter{after: 10})
	assert.EqualError(err, "disk full")

	assert.Equal(STATE_FAILED, comp.State)

	err = comp.Compile(strings.NewReader("+"), &failWriter{after: len(Preamble)})
	assert.EqualError(err, "disk full")
	assert.Equal(STATE_FAILED, comp.State)
}

func TestOpOf(t *testing.T) {
	assert := assert.New(t)

	for n, ch := range "><+-.,[]" {
		op, ok := OpOf(ch)
		assert.True(ok)
		assert.Equal(Op(n), op)
		assert.Equal(string(ch), op.String())
	}

	_, ok := OpOf('x')
	assert.False(ok)
	assert.Equal("Op(8)", Op(8).String())
	assert.Equal("syntax error", STATE_SYNTAX_ERROR.String())
}

func TestCompilerVerbose(t *testing.T) {
	assert := assert.New(t)

	logged := &bytes.Buffer{}
	comp := &Compiler{
		Verbose: true,
		Logger:  slog.New(slog.NewTextHandler(logged, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}

	assert.NoError(comp.Compile(strings.NewReader("[\n]"), io.Discard))
	assert.Contains(logged.String(), `msg="loop open" id=0 pos=1:1`)
	assert.Contains(logged.String(), `msg="loop close" id=0 pos=2:1`)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("is a directory")
}

func TestCompilerReadError(t *testing.T) {
	assert := assert.New(t)

	comp := &Compiler{}
	err := comp.Compile(errReader{}, io.Discard)
	assert.EqualError(err, "is a directory")
	assert.Equal(STATE_FAILED, comp.State)
	assert.Equal("failed", STATE_FAILED.String())
}

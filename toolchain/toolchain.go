// Package toolchain runs the external assembler and linker.
package toolchain

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

// ErrToolchain is a failed assembler/linker run.
type ErrToolchain struct {
	Command string
	Output  string // Diagnostic output, verbatim.
	Err     error
}

func (err *ErrToolchain) Error() string {
	return f("%v: %v", err.Command, err.Err)
}

func (err *ErrToolchain) Unwrap() error {
	return err.Err
}

// Toolchain assembles and links a freestanding, static executable.
type Toolchain struct {
	Command string   // Assembler/linker driver.
	Flags   []string // Flags following the output file.
}

// Default is gcc, without the C runtime, statically linked.
func Default() *Toolchain {
	return &Toolchain{
		Command: "gcc",
		Flags:   []string{"-nostdlib", "-static"},
	}
}

// Args returns the command line arguments to build outPath from asmPath.
func (tc *Toolchain) Args(asmPath, outPath string) (args []string) {
	args = append(args, asmPath, "-o", outPath)
	args = append(args, tc.Flags...)
	return
}

// Build assembles and links asmPath into outPath.
func (tc *Toolchain) Build(ctx context.Context, asmPath, outPath string) (err error) {
	cmd := exec.CommandContext(ctx, tc.Command, tc.Args(asmPath, outPath)...)

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	err = cmd.Run()
	if err != nil {
		err = &ErrToolchain{
			Command: tc.Command,
			Output:  stderr.String(),
			Err:     errors.Wrap(err, f("assemble/link")),
		}
	}

	return
}

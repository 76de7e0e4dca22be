// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command bfc compiles Brainfuck to a freestanding x86-64 Linux executable.
//
//	bfc [flags] SOURCE.bf OUTPUT
//	bfc -run [flags] SOURCE.bf
//
// SOURCE.bf is translated to OUTPUT.s, which is then assembled and linked
// to OUTPUT by gcc (or the assembler named in the -config file). OUTPUT.s is
// removed once OUTPUT is built, unless -S is given or the configuration sets
// keep_asm.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/ezrec/bfc/compiler"
	"github.com/ezrec/bfc/config"
	"github.com/ezrec/bfc/emulator"
	"github.com/ezrec/bfc/internal"
	bfio "github.com/ezrec/bfc/io"
	"github.com/ezrec/bfc/toolchain"
	"github.com/ezrec/bfc/translate"
)

const usage = "USAGE: bfc [BRAINFUCK FILE].bf [OUTPUT FILE]"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rc := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	os.Exit(rc)
}

// run is bfc with its process environment passed in. It returns the exit
// status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var configPath string
	var logPath string
	var asmOnly bool
	var emulate bool
	var verbose bool

	flags := flag.NewFlagSet("bfc", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&configPath, "config", "", "Starlark configuration file")
	flags.StringVar(&logPath, "log", "", "Also write JSON logs to this file")
	flags.BoolVar(&asmOnly, "S", false, "Write OUTPUT.s only, do not assemble")
	flags.BoolVar(&emulate, "run", false, "Run SOURCE with the emulator instead of compiling")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.Usage = func() {
		translate.Fprintln(stderr, usage)
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1
	}

	var logs []io.Writer
	if len(logPath) != 0 {
		logf, err := os.Create(logPath)
		if err != nil {
			translate.Fprintln(stderr, "Error creating log file: %v", err)
			return 1
		}
		defer logf.Close()
		logs = append(logs, logf)
	}

	level := internal.Level(verbose)
	logger := internal.NewLogger(stderr, level, logs...)

	cfg := config.Default()
	if len(configPath) != 0 {
		cfg, err = config.Load(configPath, logger)
		if err != nil {
			translate.Fprintln(stderr, "Error loading configuration: %v", err)
			return 1
		}
	}
	if cfg.Verbose {
		level.Set(slog.LevelDebug)
	}

	want := 2
	if emulate {
		want = 1
	}
	if flags.NArg() != want {
		translate.Fprintln(stderr, "Error: Invalid argument(s).")
		translate.Fprintln(stderr, usage)
		return 1
	}

	source := flags.Arg(0)

	if emulate {
		return runEmulator(logger, verbose || cfg.Verbose, source, stdin, stdout, stderr)
	}

	output := flags.Arg(1)
	keep := asmOnly || cfg.KeepAsm

	rc := compile(logger, verbose || cfg.Verbose, source, output, stdout, stderr)
	if rc != 0 || asmOnly {
		return rc
	}

	return build(ctx, logger, cfg, output, keep, stderr)
}

// reportSyntax prints a syntax error for source. It returns false if err
// is not a syntax error.
func reportSyntax(stderr io.Writer, source string, err error) bool {
	var syntax compiler.ErrSyntax
	if !errors.As(err, &syntax) {
		return false
	}

	switch {
	case errors.Is(err, compiler.ErrCloseWithoutOpen):
		translate.Fprintln(stderr, "%v:%v: Syntax error! You cannot close a loop which has not been opened.", source, syntax.Position)
	case errors.Is(err, compiler.ErrOpenWithoutClose):
		translate.Fprintln(stderr, "%v:%v: Syntax error! You have declared a loop which is never closed.", source, syntax.Position)
	default:
		translate.Fprintln(stderr, "%v:%v", source, err)
	}

	return true
}

// compile translates source into output + ".s".
func compile(logger *slog.Logger, verbose bool, source, output string, stdout, stderr io.Writer) int {
	start := time.Now()

	inf, err := os.Open(source)
	if err != nil {
		translate.Fprintln(stderr, "Error compiling brainfuck: %v", err)
		return 1
	}
	defer inf.Close()

	asmPath := output + ".s"
	art, err := bfio.Create(nil, asmPath)
	if err != nil {
		translate.Fprintln(stderr, "Error creating output file: %v", err)
		return 1
	}

	comp := &compiler.Compiler{
		Verbose: verbose,
		Logger:  logger,
	}

	err = comp.Compile(inf, art)
	if err != nil && reportSyntax(stderr, source, err) {
		logger.Debug("rollback", "path", asmPath, "state", comp.State.String())
		err = art.Rollback()
		if err != nil {
			translate.Fprintln(stderr, "Unexpected error occurred: %v", err)
		}
		return 1
	}
	if err != nil {
		// Read and write failures keep the partial artifact.
		translate.Fprintln(stderr, "Error compiling brainfuck: %v", err)
		logger.Debug("keep", "path", asmPath, "state", comp.State.String())
		_ = art.Commit()
		return 1
	}

	err = art.Commit()
	if err != nil {
		translate.Fprintln(stderr, "Error creating output file: %v", err)
		return 1
	}

	logger.Debug("compiled", "source", source, "path", asmPath, "loops", comp.Labels.Retired())
	translate.Fprintln(stdout, "Program compiled in %d millisecond(s).", time.Since(start).Milliseconds())

	return 0
}

// displayName is how the assembler/linker command is named in messages.
func displayName(command string) string {
	base := filepath.Base(command)
	if base == "gcc" {
		return "GCC"
	}
	return base
}

// build assembles and links output + ".s" into output.
func build(ctx context.Context, logger *slog.Logger, cfg *config.Config, output string, keep bool, stderr io.Writer) int {
	asmPath := output + ".s"
	tc := &toolchain.Toolchain{
		Command: cfg.Cc,
		Flags:   cfg.CcFlags,
	}

	logger.Debug("build", "command", tc.Command, "args", tc.Args(asmPath, output))

	err := tc.Build(ctx, asmPath, output)
	if err != nil {
		name := displayName(tc.Command)
		translate.Fprintln(stderr, "%v failed to assemble/link:", name)

		var tcErr *toolchain.ErrToolchain
		if errors.As(err, &tcErr) {
			fmt.Fprint(stderr, tcErr.Output)
		}
		translate.Fprintln(stderr, "%v", err)
		if errors.Is(err, exec.ErrNotFound) {
			translate.Fprintln(stderr, "Assembling/linking failed! Do you have %v installed?", name)
		}
		logger.Debug("build", "error", err)
		return 1
	}

	if keep {
		return 0
	}

	err = os.Remove(asmPath)
	if err != nil {
		translate.Fprintln(stderr, "Unexpected error occurred: %v", err)
		return 1
	}

	return 0
}

// runEmulator interprets source with stdin and stdout as its tape I/O.
func runEmulator(logger *slog.Logger, verbose bool, source string, stdin io.Reader, stdout, stderr io.Writer) int {
	inf, err := os.Open(source)
	if err != nil {
		translate.Fprintln(stderr, "Error running brainfuck: %v", err)
		return 1
	}
	defer inf.Close()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Logger = logger

	err = emu.Load(inf)
	if err != nil {
		if !reportSyntax(stderr, source, err) {
			translate.Fprintln(stderr, "Error running brainfuck: %v", err)
		}
		return 1
	}

	emu.Tape.Input = stdin
	emu.Tape.Output = stdout

	err = emu.Run(0)
	if err != nil {
		translate.Fprintln(stderr, "%v:%v", source, err)
		return 1
	}

	logger.Debug("emulated", "source", source, "ticks", emu.Ticks)

	return 0
}

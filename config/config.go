// Package config loads bfc settings from a Starlark file.
//
// The file is executed with these predeclared values:
//
//	CC         default assembler/linker command ("gcc")
//	CC_FLAGS   default flags, as a tuple
//	TAPE_SIZE  cells on the tape
//
// and may set any of these globals:
//
//	cc        string
//	cc_flags  list or tuple of strings
//	keep_asm  bool, keep the intermediate assembly
//	verbose   bool
//
// Other globals are ignored.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bfc/compiler"
	"github.com/ezrec/bfc/toolchain"
)

// Config holds compiler driver settings.
type Config struct {
	Cc      string   // Assembler/linker command.
	CcFlags []string // Flags following the output file.
	KeepAsm bool     // Keep the intermediate assembly.
	Verbose bool     // Debug logging.
}

// Default returns the settings used without a configuration file.
func Default() (cfg *Config) {
	tc := toolchain.Default()
	cfg = &Config{
		Cc:      tc.Command,
		CcFlags: slices.Clone(tc.Flags),
	}

	return
}

// Load reads and executes the configuration file at path.
// Starlark print() output goes to logger, or slog.Default() if nil.
func Load(path string, logger *slog.Logger) (cfg *Config, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		err = &ErrConfig{Path: path, Err: err}
		return
	}

	return Parse(path, src, logger)
}

// Parse executes src as a configuration file named filename.
// Starlark print() output goes to logger, or slog.Default() if nil.
func Parse(filename string, src any, logger *slog.Logger) (cfg *Config, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg = Default()

	flags := make([]starlark.Value, len(cfg.CcFlags))
	for n, flag := range cfg.CcFlags {
		flags[n] = starlark.String(flag)
	}

	thread := &starlark.Thread{
		Name: "config",
		Print: func(_ *starlark.Thread, msg string) {
			logger.Info(msg, "config", filename)
		},
	}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"CC":        starlark.String(cfg.Cc),
		"CC_FLAGS":  starlark.Tuple(flags),
		"TAPE_SIZE": starlark.MakeInt(compiler.TAPE_SIZE),
	}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, pred)
	if err != nil {
		err = &ErrConfig{Path: filename, Err: err}
		cfg = nil
		return
	}

	var key string
	defer func() {
		if err != nil {
			err = &ErrConfig{Path: filename, Key: key, Err: err}
			cfg = nil
		}
	}()

	key = "cc"
	if value, ok := globals[key]; ok {
		cfg.Cc, err = asString(value)
		if err != nil {
			return
		}
	}

	key = "cc_flags"
	if value, ok := globals[key]; ok {
		cfg.CcFlags, err = asStrings(value)
		if err != nil {
			return
		}
	}

	key = "keep_asm"
	if value, ok := globals[key]; ok {
		cfg.KeepAsm, err = asBool(value)
		if err != nil {
			return
		}
	}

	key = "verbose"
	if value, ok := globals[key]; ok {
		cfg.Verbose, err = asBool(value)
		if err != nil {
			return
		}
	}

	return
}

func typeError(want string, value starlark.Value) error {
	return fmt.Errorf("%w: %v", ErrConfigType, f("want %v, got %v", want, value.Type()))
}

func asString(value starlark.Value) (str string, err error) {
	s, ok := value.(starlark.String)
	if !ok {
		err = typeError("string", value)
		return
	}

	str = string(s)
	return
}

func asBool(value starlark.Value) (b bool, err error) {
	v, ok := value.(starlark.Bool)
	if !ok {
		err = typeError("bool", value)
		return
	}

	b = bool(v)
	return
}

func asStrings(value starlark.Value) (strs []string, err error) {
	switch value.(type) {
	case *starlark.List, starlark.Tuple:
	default:
		err = typeError("list", value)
		return
	}

	iter := starlark.Iterate(value)
	defer iter.Done()

	strs = []string{}
	var item starlark.Value
	for iter.Next(&item) {
		var str string
		str, err = asString(item)
		if err != nil {
			strs = nil
			return
		}
		strs = append(strs, str)
	}

	return
}

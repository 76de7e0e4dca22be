package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bfc/toolchain"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal("gcc", cfg.Cc)
	assert.Equal([]string{"-nostdlib", "-static"}, cfg.CcFlags)
	assert.False(cfg.KeepAsm)
	assert.False(cfg.Verbose)
}

func TestParseEmpty(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse("empty.star", "", nil)
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	src := `
cc = "clang"
cc_flags = list(CC_FLAGS) + ["-fuse-ld=lld"]
keep_asm = TAPE_SIZE == 30000
verbose = True
unrelated = 42
`
	cfg, err := Parse("bfc.star", src, nil)
	assert.NoError(err)
	assert.Equal("clang", cfg.Cc)
	assert.Equal([]string{"-nostdlib", "-static", "-fuse-ld=lld"}, cfg.CcFlags)
	assert.True(cfg.KeepAsm)
	assert.True(cfg.Verbose)
}

func TestParseTuple(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse("bfc.star", `cc_flags = ("-static",)`, nil)
	assert.NoError(err)
	assert.Equal([]string{"-static"}, cfg.CcFlags)

	cfg, err = Parse("bfc.star", `cc_flags = []`, nil)
	assert.NoError(err)
	assert.Equal([]string{}, cfg.CcFlags)
}

func TestParseTypeErrors(t *testing.T) {
	assert := assert.New(t)

	table := map[string]string{
		`cc = 3`:            "cc",
		`cc_flags = "-O2"`:  "cc_flags",
		`cc_flags = [1, 2]`: "cc_flags",
		`keep_asm = "yes"`:  "keep_asm",
		`verbose = None`:    "verbose",
	}

	for src, key := range table {
		cfg, err := Parse("bad.star", src, nil)
		assert.Nil(cfg, src)
		assert.ErrorIs(err, ErrConfigType, src)

		var cfgErr *ErrConfig
		assert.True(errors.As(err, &cfgErr), src)
		assert.Equal(key, cfgErr.Key, src)
		assert.Equal("bad.star", cfgErr.Path, src)
	}
}

func TestParseSyntaxError(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse("broken.star", "cc = ", nil)
	assert.Nil(cfg)

	var cfgErr *ErrConfig
	assert.True(errors.As(err, &cfgErr))
	assert.Equal("", cfgErr.Key)
	assert.Contains(err.Error(), "broken.star")
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "bfc.star")
	assert.NoError(os.WriteFile(path, []byte("cc = CC + \"-14\"\n"), 0o644))

	cfg, err := Load(path, nil)
	assert.NoError(err)
	assert.Equal("gcc-14", cfg.Cc)

	_, err = Load(filepath.Join(t.TempDir(), "missing.star"), nil)
	assert.True(errors.Is(err, os.ErrNotExist))
}

func TestParsePrint(t *testing.T) {
	assert := assert.New(t)

	logged := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logged, nil))

	_, err := Parse("bfc.star", `print("using", CC)`, logger)
	assert.NoError(err)
	assert.Contains(logged.String(), `msg="using gcc"`)
	assert.Contains(logged.String(), "config=bfc.star")
}

func TestDefaultToolchain(t *testing.T) {
	assert := assert.New(t)

	tc := toolchain.Default()
	cfg := Default()
	assert.Equal(tc.Command, cfg.Cc)
	assert.Equal(tc.Flags, cfg.CcFlags)

	// Defaults are not shared between callers.
	cfg.CcFlags[0] = "-O2"
	assert.Equal("-nostdlib", Default().CcFlags[0])
}

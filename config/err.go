package config

import (
	"errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	ErrConfigType = errors.New(f("wrong type"))
)

// ErrConfig is a failure to load a configuration file.
type ErrConfig struct {
	Path string
	Key  string // Global that failed, if any.
	Err  error
}

func (err *ErrConfig) Error() string {
	if len(err.Key) == 0 {
		return f("%v: %v", err.Path, err.Err)
	}
	return f("%v: %v: %v", err.Path, err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

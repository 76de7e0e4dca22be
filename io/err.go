package io

import (
	"errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	ErrArtifactClosed = errors.New(f("artifact already closed"))
)

// ErrArtifact is a failure to create or write an artifact.
type ErrArtifact struct {
	Path string
	Err  error
}

func (err *ErrArtifact) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrArtifact) Unwrap() error {
	return err.Err
}

// ErrCleanup is a failure to remove a partial artifact.
type ErrCleanup struct {
	Path string
	Err  error
}

func (err *ErrCleanup) Error() string {
	return f("%v: cleanup: %v", err.Path, err.Err)
}

func (err *ErrCleanup) Unwrap() error {
	return err.Err
}

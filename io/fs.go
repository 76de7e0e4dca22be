// Package io provides the file and stream plumbing for bfc.
// It includes output artifacts that are kept only on Commit (Artifact),
// the file system they live on (CreateFS), and byte-at-a-time program
// I/O with an input staging cell (Tape).
package io

import (
	"io"
	"os"
)

// CreateFS defines a file system that supports creating and removing files.
// It allows artifacts to be placed on something other than the host file
// system, mostly for tests.
type CreateFS interface {
	// Create creates or truncates a file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Remove removes a file.
	Remove(name string) (err error)
}

// OsFS is the host file system.
type OsFS struct{}

func (OsFS) Create(name string) (file io.WriteCloser, err error) {
	return os.Create(name)
}

func (OsFS) Remove(name string) (err error) {
	return os.Remove(name)
}

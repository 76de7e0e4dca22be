package io

import (
	"io"

	"github.com/pkg/errors"
)

// Artifact is an output file that is only kept if Commit is called.
//
// Writes go straight through to the file. Once the artifact is closed by
// Commit or Rollback, further writes fail with ErrArtifactClosed.
type Artifact struct {
	Path string
	FS   CreateFS

	file io.WriteCloser
}

// Create creates, or truncates, the artifact at path on fsys.
// If fsys is nil, the host file system is used.
func Create(fsys CreateFS, path string) (art *Artifact, err error) {
	if fsys == nil {
		fsys = OsFS{}
	}

	file, err := fsys.Create(path)
	if err != nil {
		err = &ErrArtifact{Path: path, Err: errors.Wrap(err, f("create"))}
		return
	}

	art = &Artifact{
		Path: path,
		FS:   fsys,
		file: file,
	}

	return
}

// Write appends data to the artifact.
func (art *Artifact) Write(data []byte) (n int, err error) {
	if art.file == nil {
		err = ErrArtifactClosed
		return
	}

	n, err = art.file.Write(data)
	if err != nil {
		err = &ErrArtifact{Path: art.Path, Err: errors.Wrap(err, f("write"))}
	}

	return
}

func (art *Artifact) close() (err error) {
	if art.file == nil {
		err = ErrArtifactClosed
		return
	}

	err = art.file.Close()
	art.file = nil

	return
}

// Commit closes the artifact, keeping it.
func (art *Artifact) Commit() (err error) {
	err = art.close()
	if err != nil && !errors.Is(err, ErrArtifactClosed) {
		err = &ErrArtifact{Path: art.Path, Err: errors.Wrap(err, f("close"))}
	}

	return
}

// Rollback closes the artifact if still open, and removes it.
// A failure to remove it is returned as an ErrCleanup.
func (art *Artifact) Rollback() (err error) {
	if art.file != nil {
		_ = art.close()
	}

	err = art.FS.Remove(art.Path)
	if err != nil {
		err = &ErrCleanup{Path: art.Path, Err: errors.Wrap(err, f("remove"))}
	}

	return
}

// Package workspace stages files pulled off a device into uniquely named
// local directories and guarantees their cleanup.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/b2gtools/b2ginfo/transport"
)

// ErrMissingAfterPull marks a pull the transport reported as successful
// while the destination file never appeared locally.
var ErrMissingAfterPull = errors.New("destination file missing after pull")

// ErrPullFailed reports a failed retrieval of one remote file.
type ErrPullFailed struct {
	Remote string
	Err    error
}

func (e *ErrPullFailed) Error() string {
	return fmt.Sprintf("pulling %s: %v", e.Remote, e.Err)
}

func (e *ErrPullFailed) Unwrap() error {
	return e.Err
}

// Workspace allocates staging directories under one base directory and
// serializes remote pulls per device with a file lock, so two processes
// never run transfers against the same device concurrently.
type Workspace struct {
	baseDir string
	locker  *Locker
	logger  logr.Logger
}

// New creates a Workspace rooted at baseDir. The directory is created
// lazily on first retrieval.
func New(baseDir string, logger logr.Logger) *Workspace {
	return &Workspace{
		baseDir: baseDir,
		locker:  NewLocker(filepath.Join(baseDir, ".locks")),
		logger:  logger,
	}
}

// Retrieval is one staged file. The caller owns it and must call Release
// when done with the content.
type Retrieval struct {
	// Dir is the staging directory holding exactly the retrieved file.
	Dir string
	// Filename is the file's base name, unchanged from the device side.
	Filename string
}

// Path returns the local path of the retrieved file.
func (r *Retrieval) Path() string {
	return filepath.Join(r.Dir, r.Filename)
}

// Release removes the staging directory. Safe to call more than once.
func (r *Retrieval) Release() error {
	return os.RemoveAll(r.Dir)
}

// Retrieve copies remoteDir/filename off the device into a fresh staging
// directory. The transport reporting success is not trusted on its own:
// the destination file must exist locally afterwards. On failure the
// staging directory is removed before returning.
func (w *Workspace) Retrieve(ctx context.Context, dev transport.Device, remoteDir, filename string) (*Retrieval, error) {
	unlock, err := w.locker.Acquire(ctx, dev.DeviceID())
	if err != nil {
		return nil, err
	}
	defer unlock()

	dir, err := w.stagingDir()
	if err != nil {
		return nil, fmt.Errorf("allocating staging directory: %w", err)
	}

	remotePath := path.Join(remoteDir, filename)
	w.logger.V(1).Info("retrieving remote file", "remote", remotePath, "staging", dir)
	if err := dev.PullFile(ctx, remotePath, dir); err != nil {
		os.RemoveAll(dir)
		return nil, &ErrPullFailed{Remote: remotePath, Err: err}
	}

	ret := &Retrieval{Dir: dir, Filename: filename}
	if _, err := os.Stat(ret.Path()); err != nil {
		os.RemoveAll(dir)
		return nil, &ErrPullFailed{Remote: remotePath, Err: ErrMissingAfterPull}
	}
	return ret, nil
}

// stagingDir creates a uniquely named directory under the workspace base.
func (w *Workspace) stagingDir() (string, error) {
	dir := filepath.Join(w.baseDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Package b2ginfo resolves the source-control revisions of the Gecko and
// Gaia builds installed on a B2G device. The identifiers are not exposed
// through any single stable interface; depending on how the image was
// built they live in a sources manifest, a platform descriptor file, or
// inside the packaged Settings application, at one of several device-side
// locations. The client searches the candidate locations in priority
// order, extracts the value with a format-specific streaming scanner, and
// memoizes the result for the process lifetime.
package b2ginfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/b2gtools/b2ginfo/transport"
	"github.com/b2gtools/b2ginfo/workspace"
)

// Candidate is one remote location tried during a fallback search.
// Ordering across a candidate list encodes priority: first success wins.
type Candidate struct {
	Dir      string
	Filename string
}

// Client resolves device revisions over a single device transport.
type Client struct {
	device transport.Device
	ws     *workspace.Workspace
	wsDir  string
	cache  *RevisionCache
	logger logr.Logger
}

// New creates a Client for the given device transport.
// If no options are provided, it uses default settings:
// - Staging workspace at ~/.b2ginfo/staging
// - A fresh revision cache
// - Logging disabled (logr.Discard())
func New(device transport.Device, opts ...Option) (*Client, error) {
	if device == nil {
		return nil, errors.New("nil device transport")
	}
	c := &Client{
		device: device,
		logger: logr.Discard(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.cache == nil {
		c.cache = NewRevisionCache()
	}

	if c.ws == nil {
		dir := c.wsDir
		if dir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			dir = filepath.Join(homeDir, ".b2ginfo", "staging")
		}
		c.ws = workspace.New(dir, c.logger)
	}

	return c, nil
}

// retrieveFirst tries each candidate in declared order and returns the
// first successful retrieval. A candidate's failure only means "try the
// next one"; exhausting the whole list is the caller-visible failure.
func (c *Client) retrieveFirst(ctx context.Context, candidates []Candidate) (*workspace.Retrieval, error) {
	var last error
	for _, cand := range candidates {
		ret, err := c.ws.Retrieve(ctx, c.device, cand.Dir, cand.Filename)
		if err == nil {
			return ret, nil
		}
		c.logger.V(1).Info("candidate location failed", "dir", cand.Dir, "file", cand.Filename, "reason", err.Error())
		last = err
	}
	return nil, &ErrAllCandidatesFailed{Attempts: len(candidates), Last: last}
}

package b2ginfo

import (
	"github.com/go-logr/logr"

	"github.com/b2gtools/b2ginfo/workspace"
)

// Option configures a Client.
type Option func(*Client) error

// WithLogger sets a custom logger for the client, workspace, and
// transport operations it drives.
// If not set, logging is disabled (logr.Discard() is used).
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithCache sets the revision cache the client memoizes into. Resolutions
// are cached for the cache's lifetime, so sharing one cache across
// clients shares their results.
func WithCache(cache *RevisionCache) Option {
	return func(c *Client) error {
		c.cache = cache
		return nil
	}
}

// WithWorkspace sets a custom staging workspace.
func WithWorkspace(ws *workspace.Workspace) Option {
	return func(c *Client) error {
		c.ws = ws
		return nil
	}
}

// WithWorkspaceDir sets the staging workspace base directory.
func WithWorkspaceDir(dir string) Option {
	return func(c *Client) error {
		c.wsDir = dir
		return nil
	}
}

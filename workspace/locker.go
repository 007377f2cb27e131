package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Locker manages per-device file locks so remote transfers stay strictly
// sequential even across processes sharing one workspace.
type Locker struct {
	locksDir string
}

// NewLocker creates a Locker that stores lock files in the given
// directory.
func NewLocker(locksDir string) *Locker {
	return &Locker{locksDir: locksDir}
}

// lockPath returns the lock file path for a device id.
func (l *Locker) lockPath(deviceID string) string {
	name := deviceID + ".lock"
	// Sanitize path separators and other problematic characters
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, ":", "-")
	return filepath.Join(l.locksDir, name)
}

// Acquire takes the exclusive lock for a device. The returned function
// releases the lock and should be called when done. Returns an error if
// the context is cancelled while waiting.
func (l *Locker) Acquire(ctx context.Context, deviceID string) (unlock func() error, err error) {
	if err := os.MkdirAll(l.locksDir, 0755); err != nil {
		return nil, fmt.Errorf("creating locks directory: %w", err)
	}

	fl := flock.New(l.lockPath(deviceID))
	locked, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquiring device lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("acquiring device lock: %v", ctx.Err())
	}
	return fl.Unlock, nil
}

package transport

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// ADB drives the adb binary to talk to a USB-attached device.
type ADB struct {
	// Path is the adb binary to invoke. Defaults to "adb" on $PATH.
	Path string
	// Serial selects a device when several are attached. Optional.
	Serial string

	logger logr.Logger
}

// NewADB returns an ADB transport for the device with the given serial
// (empty for the only attached device).
func NewADB(serial string, logger logr.Logger) *ADB {
	return &ADB{Serial: serial, logger: logger}
}

func (a *ADB) DeviceID() string {
	if a.Serial != "" {
		return a.Serial
	}
	return "adb"
}

func (a *ADB) PullFile(ctx context.Context, remotePath, localDir string) error {
	dest := filepath.Join(localDir, path.Base(remotePath))
	_, err := a.run(ctx, a.args("pull", remotePath, dest)...)
	return err
}

func (a *ADB) Shell(ctx context.Context, command string, args ...string) (string, error) {
	return a.run(ctx, a.args("shell", commandLine(nil, command, args...))...)
}

func (a *ADB) ShellEnv(ctx context.Context, env map[string]string, command string, args ...string) (string, error) {
	return a.run(ctx, a.args("shell", commandLine(env, command, args...))...)
}

// args prepends the device selector to an adb invocation.
func (a *ADB) args(rest ...string) []string {
	if a.Serial == "" {
		return rest
	}
	return append([]string{"-s", a.Serial}, rest...)
}

func (a *ADB) run(ctx context.Context, args ...string) (string, error) {
	bin := a.Path
	if bin == "" {
		bin = "adb"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	verb := args[0]
	if a.Serial != "" && len(args) > 2 {
		verb = args[2]
	}
	a.logger.V(1).Info("running adb", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("adb %s: %s: %w", verb, msg, err)
		}
		return "", fmt.Errorf("adb %s: %w", verb, err)
	}
	return stdout.String(), nil
}

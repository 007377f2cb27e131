// Package transport provides the command transports used to reach an
// attached B2G device: an adb-based one for USB-attached devices and an
// SSH/SFTP one for devices running sshd.
package transport

import (
	"context"
	"sort"
	"strings"
)

// Device is the command transport to one attached device.
type Device interface {
	// DeviceID names the device for locking and logging purposes.
	DeviceID() string

	// PullFile copies the remote file at remotePath into localDir,
	// keeping its base name. A nil return only means the transport
	// reported success; devices have been seen reporting success
	// without delivering the file, so callers must verify the
	// destination themselves.
	PullFile(ctx context.Context, remotePath, localDir string) error

	// Shell runs a command on the device and returns its standard
	// output.
	Shell(ctx context.Context, command string, args ...string) (string, error)

	// ShellEnv is Shell with the given variables set for exactly this
	// invocation.
	ShellEnv(ctx context.Context, env map[string]string, command string, args ...string) (string, error)
}

// commandLine joins a command and its arguments into the single string
// both transports hand to the device-side shell, with env assignments
// prefixed in sorted order.
func commandLine(env map[string]string, command string, args ...string) string {
	parts := make([]string, 0, len(env)+1+len(args))
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+shellQuote(env[k]))
	}
	parts = append(parts, command)
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}

// shellQuote single-quotes s when it contains characters the device
// shell would otherwise interpret.
func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t'\"$`\\*?[]{}();&|<>~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SSH reaches a device over an ssh connection, pulling files with sftp
// and running commands in exec sessions.
type SSH struct {
	addr   string
	client *ssh.Client
	logger logr.Logger
}

// DialSSH connects to the device sshd at addr (host:port).
func DialSSH(ctx context.Context, addr string, config *ssh.ClientConfig, logger logr.Logger) (*SSH, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	return &SSH{addr: addr, client: ssh.NewClient(c, chans, reqs), logger: logger}, nil
}

func (s *SSH) DeviceID() string {
	return s.addr
}

func (s *SSH) PullFile(ctx context.Context, remotePath, localDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sc, err := sftp.NewClient(s.client)
	if err != nil {
		return fmt.Errorf("opening sftp session: %w", err)
	}
	defer sc.Close()

	src, err := sc.Open(remotePath)
	if err != nil {
		return fmt.Errorf("opening remote %s: %w", remotePath, err)
	}
	defer src.Close()

	destPath := filepath.Join(localDir, path.Base(remotePath))
	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}
	s.logger.V(1).Info("pulling file over sftp", "remote", remotePath, "dest", destPath)
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destPath)
		return fmt.Errorf("copying %s: %w", remotePath, err)
	}
	return dst.Close()
}

func (s *SSH) Shell(ctx context.Context, command string, args ...string) (string, error) {
	return s.shell(ctx, commandLine(nil, command, args...))
}

func (s *SSH) ShellEnv(ctx context.Context, env map[string]string, command string, args ...string) (string, error) {
	// sshd commonly rejects Setenv requests, so variables are prefixed
	// onto the command line instead.
	return s.shell(ctx, commandLine(env, command, args...))
}

func (s *SSH) shell(ctx context.Context, cmdline string) (string, error) {
	sess, err := s.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("opening ssh session: %w", err)
	}
	defer sess.Close()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	s.logger.V(1).Info("running remote command", "command", cmdline)
	go func() {
		out, err := sess.Output(cmdline)
		done <- result{out, err}
	}()
	select {
	case <-ctx.Done():
		sess.Close()
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("remote command %q: %w", cmdline, r.err)
		}
		return string(r.out), nil
	}
}

// Close tears down the ssh connection.
func (s *SSH) Close() error {
	return s.client.Close()
}

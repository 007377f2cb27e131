package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/crypto/ssh"

	b2ginfo "github.com/b2gtools/b2ginfo"
	"github.com/b2gtools/b2ginfo/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	transportName := flag.String("transport", "adb", "device transport: adb or ssh")
	serial := flag.String("serial", "", "adb device serial (optional)")
	adbPath := flag.String("adb", "", "adb binary to use (optional, defaults to adb on $PATH)")
	sshAddr := flag.String("ssh-addr", "", "device ssh address as host:port, required with -transport ssh")
	sshUser := flag.String("ssh-user", "root", "ssh user")
	sshKey := flag.String("ssh-key", "", "path to the ssh private key, required with -transport ssh")
	workspaceDir := flag.String("workspace", "", "staging directory for pulled files (optional)")
	revision := flag.String("revision", "", "resolve a single revision: gecko or gaia (default both)")
	jsonOut := flag.Bool("json", false, "print the result as JSON")
	verbose := flag.Bool("verbose", false, "enable verbose logging")

	flag.Parse()

	if *revision != "" && *revision != "gecko" && *revision != "gaia" {
		return fmt.Errorf("unknown revision %q (want gecko or gaia)", *revision)
	}

	level := hclog.Info
	if *verbose {
		level = hclog.Debug
	}
	hl := hclog.New(&hclog.LoggerOptions{
		Name:   "b2ginfo",
		Level:  level,
		Output: os.Stderr,
	})
	logger := b2ginfo.NewHCLogLogger(hl)

	ctx := context.Background()

	var device transport.Device
	switch *transportName {
	case "adb":
		adb := transport.NewADB(*serial, logger)
		adb.Path = *adbPath
		device = adb
	case "ssh":
		if *sshAddr == "" {
			return fmt.Errorf("-ssh-addr is required with -transport ssh")
		}
		config, err := sshConfig(*sshUser, *sshKey)
		if err != nil {
			return err
		}
		dev, err := transport.DialSSH(ctx, *sshAddr, config, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to device: %w", err)
		}
		defer dev.Close()
		device = dev
	default:
		return fmt.Errorf("unknown transport %q (want adb or ssh)", *transportName)
	}

	opts := []b2ginfo.Option{b2ginfo.WithLogger(logger)}
	if *workspaceDir != "" {
		opts = append(opts, b2ginfo.WithWorkspaceDir(*workspaceDir))
	}
	client, err := b2ginfo.New(device, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	revs := make(map[string]string, 2)
	if *revision == "" || *revision == "gecko" {
		rev, err := client.GeckoRevision(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve gecko revision: %w", err)
		}
		revs["gecko"] = rev
	}
	if *revision == "" || *revision == "gaia" {
		rev, err := client.GaiaRevision(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve gaia revision: %w", err)
		}
		revs["gaia"] = rev
	}

	out, err := renderResult(*jsonOut, revs)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// renderResult formats the resolved revisions. Every requested kind is
// emitted even when its revision string is empty, so a degenerate
// descriptor value stays distinguishable from a kind that was not asked
// for.
func renderResult(jsonOut bool, revs map[string]string) (string, error) {
	if jsonOut {
		out, err := json.MarshalIndent(revs, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal result: %w", err)
		}
		return string(out) + "\n", nil
	}
	var b strings.Builder
	for _, kind := range []string{"gecko", "gaia"} {
		if rev, ok := revs[kind]; ok {
			fmt.Fprintf(&b, "%s %s\n", kind, rev)
		}
	}
	return b.String(), nil
}

func sshConfig(user, keyPath string) (*ssh.ClientConfig, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("-ssh-key is required with -transport ssh")
	}
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ssh key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ssh key: %w", err)
	}
	return &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{ssh.PublicKeys(signer)},
		// Device images rotate host keys on flash, so pinning them
		// is not practical.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}, nil
}

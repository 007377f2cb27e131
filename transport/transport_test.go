package transport

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

func TestCommandLine_PlainCommand(t *testing.T) {
	got := commandLine(nil, "cat", "/system/b2g/application.ini")
	require.Equal(t, "cat /system/b2g/application.ini", got)
}

func TestCommandLine_EnvSortedAndQuoted(t *testing.T) {
	env := map[string]string{"B": "2", "A": "has space"}
	got := commandLine(env, "setprop", "key", "val")
	require.Equal(t, `A='has space' B=2 setprop key val`, got)
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", "''"},
		{"has space", "'has space'"},
		{"it's", `'it'\''s'`},
		{"a$b", "'a$b'"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, shellQuote(tc.in), "quoting %q", tc.in)
	}
}

func TestADB_ArgsIncludeSerial(t *testing.T) {
	a := NewADB("emulator-5554", logr.Discard())
	got := a.args("pull", "/system/sources.xml", "/tmp/staging/sources.xml")
	require.Equal(t, []string{"-s", "emulator-5554", "pull", "/system/sources.xml", "/tmp/staging/sources.xml"}, got)
}

func TestADB_ArgsWithoutSerial(t *testing.T) {
	a := NewADB("", logr.Discard())
	got := a.args("shell", "ls")
	require.Equal(t, []string{"shell", "ls"}, got)
}

func TestADB_DeviceID(t *testing.T) {
	require.Equal(t, "emulator-5554", NewADB("emulator-5554", logr.Discard()).DeviceID())
	require.Equal(t, "adb", NewADB("", logr.Discard()).DeviceID())
}

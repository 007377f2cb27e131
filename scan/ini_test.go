package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestINIValue_ReturnsFirstMatchingLine(t *testing.T) {
	content := "FOO=1\nSourceStamp=deadbeef\nBAR=2\n"
	v, err := INIValue(strings.NewReader(content), "SourceStamp")
	require.NoError(t, err)
	require.Equal(t, "deadbeef", v)
}

func TestINIValue_NotFound(t *testing.T) {
	content := "FOO=1\nBAR=2\n"
	_, err := INIValue(strings.NewReader(content), "SourceStamp")
	var nf *ErrKeyNotFound
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "SourceStamp", nf.Key)
}

func TestINIValue_MatchesKeyAsSubstring(t *testing.T) {
	content := "ReleaseSourceStamp=cafef00d\n"
	v, err := INIValue(strings.NewReader(content), "SourceStamp")
	require.NoError(t, err)
	require.Equal(t, "cafef00d", v)
}

func TestINIValue_SkipsMatchingLineWithoutSeparator(t *testing.T) {
	content := "SourceStamp\nSourceStamp=real\n"
	v, err := INIValue(strings.NewReader(content), "SourceStamp")
	require.NoError(t, err)
	require.Equal(t, "real", v)
}

func TestINIValue_OnlyMalformedMatches(t *testing.T) {
	content := "SourceStamp\n"
	_, err := INIValue(strings.NewReader(content), "SourceStamp")
	var nf *ErrKeyNotFound
	require.ErrorAs(t, err, &nf)
}

func TestINIValue_ValueKeepsLaterSeparators(t *testing.T) {
	content := "SourceStamp=a=b\n"
	v, err := INIValue(strings.NewReader(content), "SourceStamp")
	require.NoError(t, err)
	require.Equal(t, "a=b", v)
}

func TestINIValue_EmptyValue(t *testing.T) {
	content := "SourceStamp=\n"
	v, err := INIValue(strings.NewReader(content), "SourceStamp")
	require.NoError(t, err)
	require.Equal(t, "", v)
}

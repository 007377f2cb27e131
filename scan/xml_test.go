package scan

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXMLAttribute_MatchesFilteredElement(t *testing.T) {
	doc := `<manifest><PROJECT NAME="other" REVISION="111"/><PROJECT NAME="gecko" REVISION="abc123"/></manifest>`
	rev, err := XMLAttribute(strings.NewReader(doc), "PROJECT", "REVISION", "NAME", "gecko")
	require.NoError(t, err)
	require.Equal(t, "abc123", rev)
}

func TestXMLAttribute_NotFound(t *testing.T) {
	doc := `<manifest><PROJECT NAME="other" REVISION="111"/></manifest>`
	_, err := XMLAttribute(strings.NewReader(doc), "PROJECT", "REVISION", "NAME", "gecko")
	var nf *ErrAttributeNotFound
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "PROJECT", nf.Tag)
	require.Equal(t, "REVISION", nf.Attribute)
}

func TestXMLAttribute_IgnoresOtherElements(t *testing.T) {
	doc := `<manifest>
	  <remote NAME="gecko" REVISION="nope"/>
	  <default/>
	  <PROJECT NAME="gaia" REVISION="no"/>
	  <PROJECT NAME="gecko" REVISION="deadbeef"/>
	</manifest>`
	rev, err := XMLAttribute(strings.NewReader(doc), "PROJECT", "REVISION", "NAME", "gecko")
	require.NoError(t, err)
	require.Equal(t, "deadbeef", rev)
}

func TestXMLAttribute_MalformedDocument(t *testing.T) {
	doc := `<manifest><PROJECT NAME="gec`
	_, err := XMLAttribute(strings.NewReader(doc), "PROJECT", "REVISION", "NAME", "gecko")
	require.Error(t, err)
	var nf *ErrAttributeNotFound
	require.False(t, errors.As(err, &nf), "a parse failure is not a not-found")
}

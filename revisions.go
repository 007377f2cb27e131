package b2ginfo

import (
	"context"
	"fmt"
	"os"

	"github.com/b2gtools/b2ginfo/scan"
)

// Fixed device-side locations the resolution flows consult.
const (
	systemRoot = "/system"
	b2gRoot    = "/system/b2g"

	settingsSystemDir = "/system/b2g/webapps/settings.gaiamobile.org"
	settingsDataDir   = "/data/local/webapps/settings.gaiamobile.org"

	sourcesManifest = "sources.xml"
	applicationINI  = "application.ini"
	platformINI     = "platform.ini"
	settingsArchive = "application.zip"

	gaiaCommitEntry = "resources/gaia_commit.txt"
	sourceStampKey  = "SourceStamp"
)

var (
	descriptorCandidates = []Candidate{
		{Dir: b2gRoot, Filename: applicationINI},
		{Dir: b2gRoot, Filename: platformINI},
	}
	settingsCandidates = []Candidate{
		{Dir: settingsSystemDir, Filename: settingsArchive},
		{Dir: settingsDataDir, Filename: settingsArchive},
	}
)

// GeckoRevision resolves the source revision of the installed Gecko
// build. The sources manifest is consulted first; images built without
// one fall back to the SourceStamp of the B2G descriptor file. The result
// is cached: later calls return without touching the device.
func (c *Client) GeckoRevision(ctx context.Context) (string, error) {
	return c.cache.resolve(RevisionGecko, func() (string, error) {
		return c.resolveGecko(ctx)
	})
}

// GaiaRevision resolves the source revision of the installed Gaia build
// from the commit marker packaged inside the Settings application. The
// result is cached like GeckoRevision's.
func (c *Client) GaiaRevision(ctx context.Context) (string, error) {
	return c.cache.resolve(RevisionGaia, func() (string, error) {
		return c.resolveGaia(ctx)
	})
}

func (c *Client) resolveGecko(ctx context.Context) (string, error) {
	rev, err := c.geckoFromManifest(ctx)
	if err == nil {
		return rev, nil
	}
	c.logger.V(1).Info("sources manifest unavailable, trying descriptor files", "reason", err.Error())
	return c.geckoFromDescriptor(ctx)
}

// geckoFromManifest pulls the sources manifest and scans it for the
// revision of the gecko project entry.
func (c *Client) geckoFromManifest(ctx context.Context) (string, error) {
	ret, err := c.ws.Retrieve(ctx, c.device, systemRoot, sourcesManifest)
	if err != nil {
		return "", err
	}
	defer ret.Release()

	f, err := os.Open(ret.Path())
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", ret.Path(), err)
	}
	defer f.Close()
	return scan.XMLAttribute(f, "PROJECT", "REVISION", "NAME", "gecko")
}

// geckoFromDescriptor resolves the B2G descriptor file and reads its
// SourceStamp value.
func (c *Client) geckoFromDescriptor(ctx context.Context) (string, error) {
	ret, err := c.retrieveFirst(ctx, descriptorCandidates)
	if err != nil {
		return "", err
	}
	defer ret.Release()

	f, err := os.Open(ret.Path())
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", ret.Path(), err)
	}
	defer f.Close()
	return scan.INIValue(f, sourceStampKey)
}

func (c *Client) resolveGaia(ctx context.Context) (string, error) {
	ret, err := c.retrieveFirst(ctx, settingsCandidates)
	if err != nil {
		return "", err
	}
	defer ret.Release()

	entries, err := scan.OpenArchive(ret.Path())
	if err != nil {
		return "", err
	}
	defer entries.Close()

	body, err := scan.ExtractEntry(entries, gaiaCommitEntry)
	if err != nil {
		return "", err
	}
	defer body.Close()

	// The commit marker's first line is the revision; the rest of the
	// entry is not read.
	return scan.FirstLine(body)
}

// Package scan holds the streaming extractors used to dig a single value
// out of the files pulled off a device: a zip entry by internal path, an
// XML attribute by element filter, and an INI-style value by key. All of
// them process their input incrementally and never buffer a whole
// document or archive member.
package scan

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// Entry is one archive member yielded by an EntryReader.
type Entry struct {
	// Path is the member's path inside the archive.
	Path string
	// Body reads the member's content. It must be fully consumed or
	// closed before the reader can advance to the next member.
	Body io.ReadCloser
}

// EntryReader iterates archive members in archive order. The contract is
// a strict state machine: the previous entry's Body must be closed before
// Next is called again, Next returns io.EOF once all members are seen.
type EntryReader interface {
	Next() (*Entry, error)
	Close() error
}

// ErrEntryActive is returned by Next when the previous entry's body has
// not been closed yet.
var ErrEntryActive = errors.New("previous archive entry still open")

// ErrEntryNotFound reports that an archive was scanned to the end without
// the wanted member appearing.
type ErrEntryNotFound struct {
	Entry string
	Seen  int
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("archive entry %q not found (%d entries scanned)", e.Entry, e.Seen)
}

// OpenArchive opens the zip archive at path as a sequential EntryReader.
func OpenArchive(path string) (EntryReader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	return &zipEntries{rc: rc}, nil
}

type zipEntries struct {
	rc   *zip.ReadCloser
	idx  int
	open *entryBody
}

func (z *zipEntries) Next() (*Entry, error) {
	if z.open != nil && !z.open.closed {
		return nil, ErrEntryActive
	}
	z.open = nil
	for z.idx < len(z.rc.File) {
		f := z.rc.File[z.idx]
		z.idx++
		if f.FileInfo().IsDir() {
			continue
		}
		body, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive entry %s: %w", f.Name, err)
		}
		z.open = &entryBody{rc: body}
		return &Entry{Path: f.Name, Body: z.open}, nil
	}
	return nil, io.EOF
}

func (z *zipEntries) Close() error {
	return z.rc.Close()
}

type entryBody struct {
	rc     io.ReadCloser
	closed bool
}

func (b *entryBody) Read(p []byte) (int, error) {
	if b.closed {
		return 0, errors.New("read from closed archive entry")
	}
	return b.rc.Read(p)
}

func (b *entryBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return b.rc.Close()
}

// ExtractEntry scans entries in order and returns the body of the first
// member whose path equals target. Members encountered before the match
// are drained and closed so the reader can advance without holding their
// content in memory; once the target is found no further member is read.
// The caller owns the returned body and must close it.
func ExtractEntry(r EntryReader, target string) (io.ReadCloser, error) {
	seen := 0
	for {
		e, err := r.Next()
		if err == io.EOF {
			return nil, &ErrEntryNotFound{Entry: target, Seen: seen}
		}
		if err != nil {
			return nil, err
		}
		seen++
		if e.Path == target {
			return e.Body, nil
		}
		if _, err := io.Copy(io.Discard, e.Body); err != nil {
			e.Body.Close()
			return nil, fmt.Errorf("draining archive entry %s: %w", e.Path, err)
		}
		if err := e.Body.Close(); err != nil {
			return nil, fmt.Errorf("closing archive entry %s: %w", e.Path, err)
		}
	}
}

// FirstLine reads r up to the first newline and returns that line with
// line-ending characters stripped. Reading stops as soon as the line is
// captured.
func FirstLine(r io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			line = append(line, buf[0])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading first line: %w", err)
		}
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return string(line), nil
}

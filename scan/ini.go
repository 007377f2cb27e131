package scan

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ErrKeyNotFound reports that a descriptor file was scanned to the end
// without a usable key line.
type ErrKeyNotFound struct {
	Key string
}

func (e *ErrKeyNotFound) Error() string {
	return fmt.Sprintf("no line with key %q found", e.Key)
}

// INIValue scans r line by line and returns the value of the first line
// that contains key and a '=' separator. The value is everything after
// the first '=', with a trailing carriage return stripped. A line that
// contains the key but no separator is skipped rather than treated as an
// empty value.
func INIValue(r io.Reader, key string) (string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, key) {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		return strings.TrimSuffix(value, "\r"), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading descriptor: %w", err)
	}
	return "", &ErrKeyNotFound{Key: key}
}

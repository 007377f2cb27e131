package scan

import (
	"encoding/xml"
	"fmt"
	"io"
)

// ErrAttributeNotFound reports that a document was scanned to the end
// without any element matching the filter.
type ErrAttributeNotFound struct {
	Tag       string
	Attribute string
}

func (e *ErrAttributeNotFound) Error() string {
	return fmt.Sprintf("no <%s> element carrying %s matched", e.Tag, e.Attribute)
}

// XMLAttribute streams the document from r and returns the value of attr
// on the first <tag> element whose filterAttr attribute equals
// filterValue. Parsing stops at the first match; the rest of the
// document is never read.
func XMLAttribute(r io.Reader, tag, attr, filterAttr, filterValue string) (string, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", &ErrAttributeNotFound{Tag: tag, Attribute: attr}
		}
		if err != nil {
			return "", fmt.Errorf("reading xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != tag {
			continue
		}
		matched := false
		value := ""
		for _, a := range se.Attr {
			switch a.Name.Local {
			case filterAttr:
				if a.Value == filterValue {
					matched = true
				}
			case attr:
				value = a.Value
			}
		}
		if matched {
			return value, nil
		}
	}
}

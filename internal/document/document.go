// Package document loads statute documents and decodes legacy single-byte encodings.
package document

import (
	"bytes"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/ava12/lagrum"
)

// Error codes used by this package:
const (
	UnknownEncodingError = lagrum.DocumentErrors + iota
	ReadError
	DecodeError
)

const UTF8 = "utf-8"

var encodings = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"cp850":        charmap.CodePage850,
	"cp437":        charmap.CodePage437,
	"mac-roman":    charmap.Macintosh,
}

var aliases = map[string]string{
	"utf8":    UTF8,
	"cp1252":  "windows-1252",
	"latin1":  "iso-8859-1",
	"latin-1": "iso-8859-1",
	"ibm850":  "cp850",
	"ibm437":  "cp437",
	"mac":     "mac-roman",
}

var bom = []byte{0xef, 0xbb, 0xbf}

// Document is a decoded text document.
type Document struct {
	Name string
	Text string
}

// Encodings returns sorted names of supported encodings.
func Encodings() []string {
	result := make([]string, 0, len(encodings)+1)
	result = append(result, UTF8)
	for name := range encodings {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Normalize returns canonical encoding name. Empty name means UTF-8.
func Normalize(enc string) (string, error) {
	enc = strings.ToLower(strings.TrimSpace(enc))
	if enc == "" {
		return UTF8, nil
	}
	if alias, has := aliases[enc]; has {
		enc = alias
	}
	if enc == UTF8 || encodings[enc] != nil {
		return enc, nil
	}
	return "", lagrum.FormatError(UnknownEncodingError, "unknown encoding %q, expecting one of %s",
		enc, strings.Join(Encodings(), ", "))
}

// Decode converts data to text.
// UTF-8 data are kept as is except for leading BOM, invalid bytes remain in text.
// nfc enables Unicode NFC normalization of the result.
func Decode(data []byte, enc string, nfc bool) (string, error) {
	enc, e := Normalize(enc)
	if e != nil {
		return "", e
	}

	var text string
	if enc == UTF8 {
		text = string(bytes.TrimPrefix(data, bom))
	} else {
		decoded, e := encodings[enc].NewDecoder().Bytes(data)
		if e != nil {
			return "", lagrum.FormatError(DecodeError, "cannot decode %s text: %s", enc, e.Error())
		}
		text = string(decoded)
	}

	if nfc {
		text = norm.NFC.String(text)
	}
	return text, nil
}

// Read reads and decodes document from r. name is used for reporting only.
func Read(name string, r io.Reader, enc string, nfc bool) (*Document, error) {
	data, e := io.ReadAll(r)
	if e != nil {
		return nil, lagrum.FormatError(ReadError, "cannot read %s: %s", name, e.Error())
	}

	text, e := Decode(data, enc, nfc)
	if e != nil {
		return nil, e
	}
	return &Document{name, text}, nil
}

// Load reads and decodes named file.
func Load(name, enc string, nfc bool) (*Document, error) {
	f, e := os.Open(name)
	if e != nil {
		return nil, lagrum.FormatError(ReadError, "cannot read %s: %s", name, e.Error())
	}
	defer f.Close()

	return Read(name, f, enc, nfc)
}

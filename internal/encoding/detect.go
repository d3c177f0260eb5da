// Package encoding turns uploaded CSV files and scraped pages into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"mime"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// detected maps chardet results to decoders. Anything else falls back to
// Windows-1252, the usual export charset of local banking software.
var detected = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-2":   charmap.ISO8859_2,
	"windows-1250": charmap.Windows1250,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// NewUTF8Reader detects the encoding of r and returns a reader yielding
// UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. valid UTF-8 is returned as-is
//  3. chardet heuristics
//  4. Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	return NewReaderWithHint(r, "")
}

// NewReaderWithHint is NewUTF8Reader for content that came with a MIME type,
// such as an HTTP response. A charset parameter naming a known encoding is
// trusted over detection; a BOM still wins over both.
func NewReaderWithHint(r io.Reader, contentType string) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if enc, ok := fromContentType(contentType); ok {
		return decode(br, enc), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if enc, ok := detected[result.Charset]; ok {
			return decode(br, enc), nil
		}
	}

	return decode(br, charmap.Windows1252), nil
}

// fromContentType resolves the charset parameter of a MIME type using the
// WHATWG encoding labels.
func fromContentType(contentType string) (encoding.Encoding, bool) {
	if contentType == "" {
		return nil, false
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, false
	}

	label, ok := params["charset"]
	if !ok {
		return nil, false
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, false
	}

	return enc, true
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == unicode.UTF8 {
		return r
	}

	return transform.NewReader(r, enc.NewDecoder())
}

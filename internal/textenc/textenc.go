// Package textenc turns subtitle input in assorted legacy encodings into UTF-8.
package textenc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dimchansky/utfbom"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Auto asks NewReader to sniff the encoding.
const Auto = "auto"

const (
	nameUTF8    = "utf-8"
	nameUTF16LE = "utf-16le"
	nameUTF16BE = "utf-16be"
	nameUTF32LE = "utf-32le"
	nameUTF32BE = "utf-32be"
)

// sampleSize is how much input is inspected when sniffing.
const sampleSize = 64 * 1024

var ErrUnknownEncoding = errors.New("unknown text encoding")

// chardet names that htmlindex does not know verbatim
var chardetAliases = map[string]string{
	"GB-18030": "gb18030",
}

// NewReader wraps r so it yields UTF-8. name is Auto or any WHATWG encoding
// label. A UTF-8 BOM is always dropped and a UTF-16 or UTF-32 BOM wins over
// name.
// The returned string is the canonical name of the encoding used.
func NewReader(r io.Reader, name string) (io.Reader, string, error) {
	br, bom := utfbom.Skip(r)
	switch bom {
	case utfbom.UTF16LittleEndian:
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()), nameUTF16LE, nil
	case utfbom.UTF16BigEndian:
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()), nameUTF16BE, nil
	case utfbom.UTF32LittleEndian:
		return transform.NewReader(br, utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()), nameUTF32LE, nil
	case utfbom.UTF32BigEndian:
		return transform.NewReader(br, utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()), nameUTF32BE, nil
	case utfbom.UTF8:
		return br, nameUTF8, nil
	}

	if !strings.EqualFold(name, Auto) {
		enc, canonical, err := Lookup(name)
		if err != nil {
			return nil, "", err
		}
		return decode(br, enc), canonical, nil
	}

	buffered := bufio.NewReaderSize(br, sampleSize)
	sample, err := buffered.Peek(sampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", fmt.Errorf("failed to sample input: %w", err)
	}

	if validUTF8Prefix(sample, len(sample) == sampleSize) {
		return buffered, nameUTF8, nil
	}

	enc, canonical, ok := Detect(sample)
	if !ok {
		return buffered, nameUTF8, nil
	}
	return decode(buffered, enc), canonical, nil
}

// Lookup resolves a WHATWG label such as "windows-1252" or "big5".
func Lookup(name string) (encoding.Encoding, string, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := chardetAliases[strings.ToUpper(label)]; ok {
		label = alias
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = label
	}
	return enc, canonical, nil
}

// Detect guesses the encoding of sample.
func Detect(sample []byte) (encoding.Encoding, string, bool) {
	if len(sample) == 0 {
		return nil, "", false
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil {
		return nil, "", false
	}

	enc, canonical, err := Lookup(result.Charset)
	if err != nil {
		return nil, "", false
	}
	return enc, canonical, true
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == unicode.UTF8 {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// validUTF8Prefix reports whether b is UTF-8, tolerating a rune cut off by
// the end of a truncated sample.
func validUTF8Prefix(b []byte, truncated bool) bool {
	if utf8.Valid(b) {
		return true
	}
	if !truncated || len(b) == 0 {
		return false
	}

	i := len(b) - 1
	for i > 0 && len(b)-i < utf8.UTFMax && !utf8.RuneStart(b[i]) {
		i--
	}
	if utf8.FullRune(b[i:]) {
		return false
	}
	return utf8.Valid(b[:i])
}

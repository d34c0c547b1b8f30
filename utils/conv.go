package utils

import (
	"bytes"

	"golang.org/x/text/transform"

	"github.com/TheDodylectableX/io-scene-xrm/config"
)

// BytesToString decodes a NUL-padded fixed-width name field using the
// configured charmap.
func BytesToString(bs []byte) string {
	n := bytes.IndexByte(bs, 0)
	if n < 0 {
		n = len(bs)
	}

	s, _, err := transform.Bytes(config.GetEncoding().NewDecoder(), bs[0:n])
	if err != nil {
		panic(err)
	}

	return string(s)
}

// StringToBytes encodes a string with the configured charmap, no padding.
// Length-prefixed fields must be sized by the charmap byte count, not by
// the UTF-8 length of the Go string.
func StringToBytes(s string) []byte {
	bs, _, err := transform.Bytes(config.GetEncoding().NewEncoder(), []byte(s))
	if err != nil {
		panic(err)
	}
	return bs
}

// StringToBytesBuffer encodes a name into a fixed-width NUL-padded field.
// A name longer than the field is a programming error upstream.
func StringToBytesBuffer(s string, bufSize int) []byte {
	bs, _, err := transform.Bytes(config.GetEncoding().NewEncoder(), []byte(s))
	if err != nil {
		panic(err)
	}
	if len(bs) > bufSize {
		panic("name does not fit fixed-width field: " + s)
	}
	r := make([]byte, bufSize)
	copy(r, bs)
	return r
}

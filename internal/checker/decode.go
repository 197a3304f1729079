package checker

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// resolveEncoding looks up an encoding by IANA label ("Shift_JIS",
// "EUC-JP", ...). ianaindex returns nil without error for labels it
// knows but has no implementation for, so both cases are checked.
func resolveEncoding(label string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.New("unsupported encoding: " + label)
	}
	return enc, nil
}

// decode converts raw input bytes to a UTF-8 string, all-or-nothing.
//
// The x/text decoders substitute U+FFFD for undecodable sequences
// instead of failing. Shift_JIS cannot encode U+FFFD, so any occurrence
// in the output means the input was invalid; that keeps decode strict
// without re-implementing the byte-level validation.
func (c *Checker) decode(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(c.enc.NewDecoder(), data)
	if err != nil {
		return "", &DecodeError{Encoding: c.cfg.Encoding, Err: err}
	}
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", &DecodeError{Encoding: c.cfg.Encoding, Err: errors.New("undecodable byte sequence")}
	}
	return string(decoded), nil
}

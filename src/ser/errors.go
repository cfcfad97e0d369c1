// Copyright 2018 Dmitriy Blokhin. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package ser

// Error is a flat enum of codec-level read failures, kept distinct from the
// underlying io error so callers can distinguish "stream broke" from "stream
// is fine but the bytes on it are not a valid encoding".
type Error int

const (
	// ErrCorruptedData the bytes read do not decode to a valid value for the
	// field being read (e.g. an unrecognized features tag byte).
	ErrCorruptedData Error = iota

	// ErrTooLargeRead a length-prefixed sequence declared a count above the
	// bound the reader was configured to accept.
	ErrTooLargeRead

	// ErrUnexpectedEOF the underlying reader ran out of bytes mid-value.
	ErrUnexpectedEOF
)

func (e Error) Error() string {
	switch e {
	case ErrCorruptedData:
		return "ser: corrupted data"
	case ErrTooLargeRead:
		return "ser: too large read"
	case ErrUnexpectedEOF:
		return "ser: unexpected EOF"
	default:
		return "ser: unknown error"
	}
}

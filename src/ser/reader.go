// Copyright 2018 Dmitriy Blokhin. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package ser

import (
	"encoding/binary"
	"io"
)

// Reader is the capability an entity's Read method needs: read fixed-width
// integers and raw bytes, bounded-length sequences, and consult the protocol
// version the bytes were written under.
type Reader interface {
	ProtocolVersion() ProtocolVersion

	ReadU8() (uint8, error)
	ReadU16() (uint16, error)
	ReadU32() (uint32, error)
	ReadU64() (uint64, error)
	ReadBytes(n int) ([]byte, error)
	ReadFixedBytes(buf []byte) error
}

// BinReader is the concrete Reader backing decode, a thin wrapper over an
// io.Reader plus the protocol version the stream was negotiated at.
type BinReader struct {
	r       io.Reader
	version ProtocolVersion
}

// NewReader returns a BinReader for the given protocol version.
func NewReader(r io.Reader, version ProtocolVersion) *BinReader {
	return &BinReader{r: r, version: version}
}

func (r *BinReader) ProtocolVersion() ProtocolVersion {
	return r.version
}

func (r *BinReader) ReadU8() (uint8, error) {
	var buf [1]byte
	if err := r.ReadFixedBytes(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (r *BinReader) ReadU16() (uint16, error) {
	var buf [2]byte
	if err := r.ReadFixedBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func (r *BinReader) ReadU32() (uint32, error) {
	var buf [4]byte
	if err := r.ReadFixedBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func (r *BinReader) ReadU64() (uint64, error) {
	var buf [8]byte
	if err := r.ReadFixedBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func (r *BinReader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.ReadFixedBytes(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *BinReader) ReadFixedBytes(buf []byte) error {
	_, err := io.ReadFull(r.r, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return ErrUnexpectedEOF
	}
	return err
}

// ReadCount reads a u64 length prefix and rejects it outright if it exceeds
// max, before the caller allocates anything sized by it, so a corrupt or
// hostile count can't be used to drive an oversized allocation. No entity
// reader in this module calls it; Output.Read bounds its proof length with
// its own check against MaxProofSize.
func ReadCount(r Reader, max uint64) (uint64, error) {
	count, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	if count > max {
		return 0, ErrTooLargeRead
	}
	return count, nil
}

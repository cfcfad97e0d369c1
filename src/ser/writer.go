// Copyright 2018 Dmitriy Blokhin. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package ser

import (
	"encoding/binary"
	"io"
)

// Writer is the capability an entity's Write method needs: write fixed-width
// integers and raw bytes, and know which protocol version and mode it is
// writing under so it can choose the right encoding for fields like
// KernelFeatures that vary by version.
type Writer interface {
	ProtocolVersion() ProtocolVersion
	SerializationMode() SerializationMode

	WriteU8(v uint8) error
	WriteU16(v uint16) error
	WriteU32(v uint32) error
	WriteU64(v uint64) error
	WriteBytes(b []byte) error
}

// BinWriter is the concrete Writer backing on-wire and on-hash encoding, a
// thin wrapper over an io.Writer plus the version/mode an entity should
// consult while writing itself.
type BinWriter struct {
	w       io.Writer
	version ProtocolVersion
	mode    SerializationMode
}

// NewWriter returns a BinWriter in Normal mode at the given protocol version.
func NewWriter(w io.Writer, version ProtocolVersion) *BinWriter {
	return &BinWriter{w: w, version: version, mode: Normal}
}

// NewHashWriter returns a BinWriter in Hash mode. Hash mode always encodes
// KernelFeatures with the v1 layout regardless of the negotiated protocol
// version, and omits an Output's range proof, so the reported
// ProtocolVersion is pinned to ProtocolVersion1.
func NewHashWriter(w io.Writer) *BinWriter {
	return &BinWriter{w: w, version: ProtocolVersion1, mode: Hash}
}

func (w *BinWriter) ProtocolVersion() ProtocolVersion {
	return w.version
}

func (w *BinWriter) SerializationMode() SerializationMode {
	return w.mode
}

func (w *BinWriter) WriteU8(v uint8) error {
	return w.WriteBytes([]byte{v})
}

func (w *BinWriter) WriteU16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return w.WriteBytes(buf[:])
}

func (w *BinWriter) WriteU32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return w.WriteBytes(buf[:])
}

func (w *BinWriter) WriteU64(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return w.WriteBytes(buf[:])
}

func (w *BinWriter) WriteBytes(b []byte) error {
	_, err := w.w.Write(b)
	return err
}

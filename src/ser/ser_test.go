// Copyright 2018 Dmitriy Blokhin. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package ser

import (
	"bytes"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ProtocolVersion2)

	if err := w.WriteU8(0x7f); err != nil {
		t.Fatalf("WriteU8: %v", err)
	}
	if err := w.WriteU16(0x1234); err != nil {
		t.Fatalf("WriteU16: %v", err)
	}
	if err := w.WriteU32(0xdeadbeef); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := w.WriteU64(0x0102030405060708); err != nil {
		t.Fatalf("WriteU64: %v", err)
	}
	if err := w.WriteBytes([]byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}

	r := NewReader(&buf, ProtocolVersion2)

	u8, err := r.ReadU8()
	if err != nil || u8 != 0x7f {
		t.Errorf("ReadU8() = %#x, %v, want 0x7f, nil", u8, err)
	}
	u16, err := r.ReadU16()
	if err != nil || u16 != 0x1234 {
		t.Errorf("ReadU16() = %#x, %v, want 0x1234, nil", u16, err)
	}
	u32, err := r.ReadU32()
	if err != nil || u32 != 0xdeadbeef {
		t.Errorf("ReadU32() = %#x, %v, want 0xdeadbeef, nil", u32, err)
	}
	u64, err := r.ReadU64()
	if err != nil || u64 != 0x0102030405060708 {
		t.Errorf("ReadU64() = %#x, %v, want 0x0102030405060708, nil", u64, err)
	}
	raw, err := r.ReadBytes(3)
	if err != nil || !bytes.Equal(raw, []byte{1, 2, 3}) {
		t.Errorf("ReadBytes(3) = %v, %v, want [1 2 3], nil", raw, err)
	}
}

func TestHashWriterPinsV1(t *testing.T) {
	var buf bytes.Buffer
	w := NewHashWriter(&buf)
	if w.ProtocolVersion() != ProtocolVersion1 {
		t.Errorf("NewHashWriter ProtocolVersion() = %d, want %d", w.ProtocolVersion(), ProtocolVersion1)
	}
	if w.SerializationMode() != Hash {
		t.Errorf("NewHashWriter SerializationMode() = %d, want Hash", w.SerializationMode())
	}
}

func TestReadCountRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ProtocolVersion2)
	if err := w.WriteU64(1000); err != nil {
		t.Fatalf("WriteU64: %v", err)
	}

	r := NewReader(&buf, ProtocolVersion2)
	if _, err := ReadCount(r, 10); err != ErrTooLargeRead {
		t.Errorf("ReadCount() err = %v, want ErrTooLargeRead", err)
	}
}

func TestReadCountWithinBound(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ProtocolVersion2)
	if err := w.WriteU64(5); err != nil {
		t.Fatalf("WriteU64: %v", err)
	}

	r := NewReader(&buf, ProtocolVersion2)
	count, err := ReadCount(r, 10)
	if err != nil || count != 5 {
		t.Errorf("ReadCount() = %d, %v, want 5, nil", count, err)
	}
}

func TestVerifySortedAndUnique(t *testing.T) {
	ok := [][]byte{{1}, {2}, {3}}
	if err := VerifySortedAndUnique(ok); err != nil {
		t.Errorf("VerifySortedAndUnique(sorted) = %v, want nil", err)
	}

	dup := [][]byte{{1}, {2}, {2}}
	if err := VerifySortedAndUnique(dup); err != ErrCorruptedData {
		t.Errorf("VerifySortedAndUnique(dup) = %v, want ErrCorruptedData", err)
	}

	unsorted := [][]byte{{2}, {1}}
	if err := VerifySortedAndUnique(unsorted); err != ErrCorruptedData {
		t.Errorf("VerifySortedAndUnique(unsorted) = %v, want ErrCorruptedData", err)
	}
}

func TestReadFixedBytesUnexpectedEOF(t *testing.T) {
	buf := bytes.NewReader([]byte{1, 2})
	r := NewReader(buf, ProtocolVersion2)
	if _, err := r.ReadU64(); err != ErrUnexpectedEOF {
		t.Errorf("ReadU64() on short buffer err = %v, want ErrUnexpectedEOF", err)
	}
}

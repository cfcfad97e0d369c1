// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"bytes"
	"testing"

	"github.com/dblokhin/grinpool/src/ser"
)

func TestKernelFeaturesV1RoundTrip(t *testing.T) {
	raw := []byte{
		0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	var f KernelFeatures
	r := ser.NewReader(bytes.NewReader(raw), ser.ProtocolVersion1)
	if err := f.Read(r); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := NewPlainKernelFeatures(10)
	if f != want {
		t.Errorf("Read() = %+v, want %+v", f, want)
	}

	var buf bytes.Buffer
	w := ser.NewWriter(&buf, ser.ProtocolVersion1)
	if err := f.Write(w); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), raw) {
		t.Errorf("Write() = %x, want %x", buf.Bytes(), raw)
	}
}

func TestKernelFeaturesV1RejectsNonZeroLockForPlain(t *testing.T) {
	raw := []byte{
		0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64,
	}

	var f KernelFeatures
	r := ser.NewReader(bytes.NewReader(raw), ser.ProtocolVersion1)
	if err := f.Read(r); err == nil {
		t.Errorf("Read() error = nil, want CorruptedData")
	}
}

func TestKernelFeaturesV2CoinbaseIsOneByte(t *testing.T) {
	f := NewCoinbaseKernelFeatures()

	var buf bytes.Buffer
	w := ser.NewWriter(&buf, ser.ProtocolVersion2)
	if err := f.Write(w); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x01}) {
		t.Errorf("Write() = %x, want 01", buf.Bytes())
	}

	var decoded KernelFeatures
	r := ser.NewReader(bytes.NewReader(buf.Bytes()), ser.ProtocolVersion2)
	if err := decoded.Read(r); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if decoded != f {
		t.Errorf("Read() = %+v, want %+v", decoded, f)
	}

	// The same single byte read as v1 needs 17 bytes total; reading fewer
	// than that fails.
	var short KernelFeatures
	rv1 := ser.NewReader(bytes.NewReader([]byte{0x01}), ser.ProtocolVersion1)
	if err := short.Read(rv1); err == nil {
		t.Errorf("Read() under v1 on truncated bytes = nil error, want failure")
	}
}

func TestKernelFeaturesUnknownTag(t *testing.T) {
	raw := []byte{0x03}

	var fv2 KernelFeatures
	rv2 := ser.NewReader(bytes.NewReader(raw), ser.ProtocolVersion2)
	if err := fv2.Read(rv2); err == nil {
		t.Errorf("v2 Read() with unknown tag = nil error, want CorruptedData")
	}

	raw17 := append([]byte{0x03}, make([]byte, 16)...)
	var fv1 KernelFeatures
	rv1 := ser.NewReader(bytes.NewReader(raw17), ser.ProtocolVersion1)
	if err := fv1.Read(rv1); err == nil {
		t.Errorf("v1 Read() with unknown tag = nil error, want CorruptedData")
	}
}

func TestKernelFeaturesSigMsgVariesByVariant(t *testing.T) {
	plain := NewPlainKernelFeatures(10).SigMsg()
	coinbase := NewCoinbaseKernelFeatures().SigMsg()
	heightLocked := NewHeightLockedKernelFeatures(10, 0).SigMsg()

	if plain == coinbase {
		t.Errorf("Plain and Coinbase SigMsg collide")
	}
	if plain == heightLocked {
		t.Errorf("Plain and HeightLocked SigMsg collide despite differing tag")
	}
}

func TestKernelFeaturesHashModeAlwaysV1(t *testing.T) {
	f := NewCoinbaseKernelFeatures()

	var buf bytes.Buffer
	w := ser.NewHashWriter(&buf)
	if err := f.Write(w); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(buf.Bytes()) != 17 {
		t.Errorf("hash-mode Write() length = %d, want 17 (v1 fixed size)", len(buf.Bytes()))
	}
}

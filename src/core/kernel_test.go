// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/dblokhin/grinpool/src/secp256k1zkp"
	"github.com/dblokhin/grinpool/src/ser"
)

func TestKernelEncodeDecodeRoundTrip(t *testing.T) {
	k := TxKernel{
		Features:  NewPlainKernelFeatures(5),
		Excess:    sampleCommitment(4),
		ExcessSig: [64]byte{1, 2, 3},
	}

	var buf bytes.Buffer
	if err := k.Write(ser.NewWriter(&buf, ser.LocalProtocolVersion)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded TxKernel
	r := ser.NewReader(bytes.NewReader(buf.Bytes()), ser.LocalProtocolVersion)
	if err := decoded.Read(r); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if decoded.Features != k.Features || !bytes.Equal(decoded.Excess, k.Excess) || decoded.ExcessSig != k.ExcessSig {
		t.Errorf("Read() = %+v, want %+v", decoded, k)
	}
}

func TestKernelFeeFromWireVector(t *testing.T) {
	excess, _ := hex.DecodeString("092095ceab2c20f9a6109a7b0add8d488b3838dcc007c77a43cbe99a14a81b62e8")
	sig, _ := hex.DecodeString("804b2ed798221e8f4c139daeedeab487221be33db1adf9e129928564e1702b02fbbacaf4cbe4c4b122a9b39d2a7625b9254e43eeade171e9ccafda6dd8538acc")

	var excessSig [64]byte
	copy(excessSig[:], sig)

	k := TxKernel{
		Features:  NewPlainKernelFeatures(2),
		Excess:    secp256k1zkp.Commitment(excess),
		ExcessSig: excessSig,
	}

	// This vector's signature was produced over a fixed fee/lock_height
	// message layout, not this package's hash-based SigMsg; Verify() is
	// exercised against self-signed kernels elsewhere, so this test only
	// checks the non-cryptographic accessor against the wire vector.
	if k.Fee() != 2 {
		t.Errorf("Fee() = %d, want 2", k.Fee())
	}
}

func TestCoinbaseKernelFeeIsZero(t *testing.T) {
	k := TxKernel{Features: NewCoinbaseKernelFeatures()}
	if k.Fee() != 0 {
		t.Errorf("Fee() = %d, want 0 for coinbase kernel", k.Fee())
	}
	if !k.IsCoinbase() {
		t.Errorf("IsCoinbase() = false, want true")
	}
}

func TestKernelVerifySelfSigned(t *testing.T) {
	k := selfSignedKernel(t, NewPlainKernelFeatures(5))
	if err := k.Verify(); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}
}

func TestKernelVerifyRejectsTamperedFee(t *testing.T) {
	k := selfSignedKernel(t, NewPlainKernelFeatures(5))
	k.Features = NewPlainKernelFeatures(6)
	if err := k.Verify(); err == nil {
		t.Errorf("Verify() error = nil after fee was tampered with, want failure")
	}
}

func TestBatchVerifyKernelSignatures(t *testing.T) {
	kernels := []TxKernel{
		selfSignedKernel(t, NewPlainKernelFeatures(1)),
		selfSignedKernel(t, NewPlainKernelFeatures(2)),
	}

	if err := BatchVerifyKernelSignatures(kernels); err != nil {
		t.Errorf("BatchVerifyKernelSignatures() error = %v, want nil", err)
	}

	kernels[1].ExcessSig = kernels[0].ExcessSig
	if err := BatchVerifyKernelSignatures(kernels); err == nil {
		t.Errorf("BatchVerifyKernelSignatures() error = nil with a swapped-in bad signature, want failure")
	}
}

// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"github.com/dblokhin/grinpool/src/consensus"
	"github.com/dblokhin/grinpool/src/secp256k1zkp"
	"github.com/dblokhin/grinpool/src/ser"
)

// KernelFeatureTag is the wire discriminant for a KernelFeatures variant.
// Fixed by consensus: the tag byte values never change and no fourth
// variant may be introduced without a protocol version bump.
type KernelFeatureTag uint8

const (
	// PlainKernel carries only a fee.
	PlainKernel KernelFeatureTag = 0

	// CoinbaseKernel balances a coinbase output; carries neither fee nor
	// lock height.
	CoinbaseKernel KernelFeatureTag = 1

	// HeightLockedKernel carries a fee and a lock height below which the
	// kernel is not valid.
	HeightLockedKernel KernelFeatureTag = 2
)

// KernelFeatures is the tagged variant a TxKernel carries. It is a closed
// sum type: Tag is the sole discriminant, and Fee/LockHeight are populated
// only for the variants that use them (both zero otherwise).
type KernelFeatures struct {
	Tag        KernelFeatureTag
	Fee        uint64
	LockHeight uint64
}

// NewPlainKernelFeatures returns a Plain{fee} variant.
func NewPlainKernelFeatures(fee uint64) KernelFeatures {
	return KernelFeatures{Tag: PlainKernel, Fee: fee}
}

// NewCoinbaseKernelFeatures returns the Coinbase variant.
func NewCoinbaseKernelFeatures() KernelFeatures {
	return KernelFeatures{Tag: CoinbaseKernel}
}

// NewHeightLockedKernelFeatures returns a HeightLocked{fee, lock_height}
// variant.
func NewHeightLockedKernelFeatures(fee, lockHeight uint64) KernelFeatures {
	return KernelFeatures{Tag: HeightLockedKernel, Fee: fee, LockHeight: lockHeight}
}

// IsCoinbase reports whether these are coinbase kernel features.
func (f KernelFeatures) IsCoinbase() bool {
	return f.Tag == CoinbaseKernel
}

// Write encodes f under w's protocol version and mode: v1 (fixed 17 bytes)
// in hash mode or under protocol version < KernelFeaturesV2Version, v2
// (variable size) otherwise.
func (f KernelFeatures) Write(w ser.Writer) error {
	if w.SerializationMode() == ser.Hash || w.ProtocolVersion() < ser.ProtocolVersion(consensus.KernelFeaturesV2Version) {
		return f.writeV1(w)
	}
	return f.writeV2(w)
}

func (f KernelFeatures) writeV1(w ser.Writer) error {
	if err := w.WriteU8(uint8(f.Tag)); err != nil {
		return err
	}
	if err := w.WriteU64(f.Fee); err != nil {
		return err
	}
	return w.WriteU64(f.LockHeight)
}

func (f KernelFeatures) writeV2(w ser.Writer) error {
	if err := w.WriteU8(uint8(f.Tag)); err != nil {
		return err
	}

	switch f.Tag {
	case PlainKernel:
		return w.WriteU64(f.Fee)
	case CoinbaseKernel:
		return nil
	case HeightLockedKernel:
		if err := w.WriteU64(f.Fee); err != nil {
			return err
		}
		return w.WriteU64(f.LockHeight)
	default:
		return NewError(ErrInvalidKernelFeatures)
	}
}

// Read decodes KernelFeatures from r, dispatching on r's protocol version:
// v1 below KernelFeaturesV2Version, v2 at or above it.
func (f *KernelFeatures) Read(r ser.Reader) error {
	if r.ProtocolVersion() < ser.ProtocolVersion(consensus.KernelFeaturesV2Version) {
		return f.readV1(r)
	}
	return f.readV2(r)
}

func (f *KernelFeatures) readV1(r ser.Reader) error {
	tag, err := r.ReadU8()
	if err != nil {
		return err
	}
	fee, err := r.ReadU64()
	if err != nil {
		return err
	}
	lockHeight, err := r.ReadU64()
	if err != nil {
		return err
	}

	switch KernelFeatureTag(tag) {
	case PlainKernel:
		if lockHeight != 0 {
			return NewError(ErrSerialization)
		}
		*f = NewPlainKernelFeatures(fee)
	case CoinbaseKernel:
		if fee != 0 || lockHeight != 0 {
			return NewError(ErrSerialization)
		}
		*f = NewCoinbaseKernelFeatures()
	case HeightLockedKernel:
		*f = NewHeightLockedKernelFeatures(fee, lockHeight)
	default:
		return NewError(ErrSerialization)
	}

	return nil
}

func (f *KernelFeatures) readV2(r ser.Reader) error {
	tag, err := r.ReadU8()
	if err != nil {
		return err
	}

	switch KernelFeatureTag(tag) {
	case PlainKernel:
		fee, err := r.ReadU64()
		if err != nil {
			return err
		}
		*f = NewPlainKernelFeatures(fee)
	case CoinbaseKernel:
		*f = NewCoinbaseKernelFeatures()
	case HeightLockedKernel:
		fee, err := r.ReadU64()
		if err != nil {
			return err
		}
		lockHeight, err := r.ReadU64()
		if err != nil {
			return err
		}
		*f = NewHeightLockedKernelFeatures(fee, lockHeight)
	default:
		return NewError(ErrSerialization)
	}

	return nil
}

// SigMsg returns the 32-byte message a kernel's excess signature signs.
// Distinct per variant so a coinbase signature can never be replayed as a
// plain one: hash(tag) for Coinbase, hash(tag, fee) for Plain, hash(tag,
// fee, lock_height) for HeightLocked. Identical across protocol versions.
func (f KernelFeatures) SigMsg() [32]byte {
	tag := []byte{byte(f.Tag)}

	switch f.Tag {
	case CoinbaseKernel:
		return secp256k1zkp.ComputeHash(tag)
	case PlainKernel:
		return secp256k1zkp.ComputeHash(tag, encodeU64(f.Fee))
	default: // HeightLockedKernel
		return secp256k1zkp.ComputeHash(tag, encodeU64(f.Fee), encodeU64(f.LockHeight))
	}
}

func encodeU64(v uint64) []byte {
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	return buf
}

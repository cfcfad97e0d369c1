// Copyright 2018 Dmitriy Blokhin. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package ser holds the protocol-versioned binary codec primitives shared by
// every on-wire transaction entity: the Writer/Reader capability interfaces,
// serialization modes, and the sorted-and-unique sequence helpers consensus
// encoding relies on.
package ser

// ProtocolVersion identifies the wire format an entity is being read from or
// written to. Entities that have changed shape across the network's
// lifetime (KernelFeatures being the prime example) match on ranges of this
// value rather than specific releases, since the version increments for
// many unrelated reasons.
type ProtocolVersion uint32

const (
	// ProtocolVersion1 is the original, fixed-size wire format.
	ProtocolVersion1 ProtocolVersion = 1

	// ProtocolVersion2 introduces the variable-size KernelFeatures encoding.
	ProtocolVersion2 ProtocolVersion = 2

	// MaxProtocolVersion is the highest version this codec understands.
	// No decoder checks against it; KernelFeatures only compares the
	// version with KernelFeaturesV2Version.
	MaxProtocolVersion ProtocolVersion = 1 << 16

	// LocalProtocolVersion is the version this node writes by default.
	LocalProtocolVersion = ProtocolVersion2
)

// SerializationMode distinguishes "on the wire" (or "to disk") encoding from
// "for hashing" encoding. The two can diverge per entity: hashing always
// uses the historical v1 KernelFeatures layout, and Output hashing omits the
// range proof.
type SerializationMode int

const (
	// Normal is the regular wire/disk encoding, honoring ProtocolVersion.
	Normal SerializationMode = iota

	// Hash is the encoding used to compute an entity's canonical hash.
	Hash
)

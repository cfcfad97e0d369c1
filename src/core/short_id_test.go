// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestShortID(t *testing.T) {
	var hash Hash
	var expected ShortID
	otherHash := make(Hash, 32)

	hash, _ = hex.DecodeString("81e47a19e6b29b0a65b9591762ce5143ed30d0261e5d24a3201752506b20f15c")
	expected, _ = hex.DecodeString("e973960ba690")

	if !bytes.Equal(hash.ShortID(otherHash), expected) {
		t.Errorf("ShortID() = %s, want %s", hash.ShortID(otherHash), expected.String())
	}

	hash, _ = hex.DecodeString("3a42e66e46dd7633b57d1f921780a1ac715e6b93c19ee52ab714178eb3a9f673")
	expected, _ = hex.DecodeString("f0c06e838e59")

	if !bytes.Equal(hash.ShortID(otherHash), expected) {
		t.Errorf("ShortID() = %s, want %s", hash.ShortID(otherHash), expected.String())
	}

	otherHash, _ = hex.DecodeString("81e47a19e6b29b0a65b9591762ce5143ed30d0261e5d24a3201752506b20f15c")
	expected, _ = hex.DecodeString("95bf0ca12d5b")

	if !bytes.Equal(hash.ShortID(otherHash), expected) {
		t.Errorf("ShortID() = %s, want %s", hash.ShortID(otherHash), expected.String())
	}
}

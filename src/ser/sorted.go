// Copyright 2018 Dmitriy Blokhin. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package ser

import "bytes"

// IsSorted reports whether hashes is sorted in strictly ascending order with
// no duplicate adjacent entries. Entities hand it the hashes of their own
// elements (computed via each element's own sortable-list type) rather than
// generic values, since this module targets a Go version without generics.
func IsSorted(hashes [][]byte) bool {
	for i := 1; i < len(hashes); i++ {
		if bytes.Compare(hashes[i-1], hashes[i]) >= 0 {
			return false
		}
	}
	return true
}

// VerifySortedAndUnique returns ErrCorruptedData if hashes is not sorted in
// strictly ascending order, surfacing adjacent duplicates as corruption too
// since a consensus-valid body never contains two identical inputs, outputs
// or kernels.
func VerifySortedAndUnique(hashes [][]byte) error {
	if !IsSorted(hashes) {
		return ErrCorruptedData
	}
	return nil
}

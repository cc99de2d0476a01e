// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func TestCompactToBigBigToCompactRoundTrip(t *testing.T) {
	tests := []uint32{
		0x1d00ffff,
		0x1c00ffff,
		0x1b0404cb,
		0x00000000,
		0x01003456,
	}

	for _, compact := range tests {
		n := CompactToBig(compact)
		if n.Sign() == 0 {
			if BigToCompact(n) != 0 {
				t.Errorf("BigToCompact(CompactToBig(%08x)) != 0 for zero magnitude", compact)
			}
			continue
		}
		// BigToCompact round-trips the magnitude, not necessarily the exact
		// byte-packed exponent/mantissa split, so compare decoded values.
		roundTripped := CompactToBig(BigToCompact(n))
		if roundTripped.Cmp(n) != 0 {
			t.Errorf("compact round-trip mismatch for %08x: got %v, want %v", compact, roundTripped, n)
		}
	}
}

func TestHashToBig(t *testing.T) {
	var hash chainhash.Hash
	hash[0] = 0x01
	got := HashToBig(&hash)
	if got.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("HashToBig of single low byte = %v, want 1", got)
	}
}

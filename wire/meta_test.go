// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
)

func TestMetaSerialize(t *testing.T) {
	m := &Meta{
		Flags:                 FlagStakeEntropy | FlagGeneratedStakeModifier,
		StakeModifier:         0x1122334455667788,
		StakeModifierChecksum: 0xfd11f4e7,
		HashProofOfStake:      chainhash.Hash{0xaa, 0xbb},
		Mint:                  100000,
		MoneySupply:           9999999,
		TxOffsets:             []uint32{80, 264},
	}

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	var got Meta
	if err := got.Deserialize(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !reflect.DeepEqual(&got, m) {
		t.Errorf("round-trip mismatch\n got: %s\nwant: %s",
			spew.Sdump(&got), spew.Sdump(m))
	}
}

// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
)

var (
	mainNetGenesisHash       = chainhash.Hash{0x01}
	mainNetGenesisMerkleRoot = chainhash.Hash{0x02}
)

// TestBlockHeaderSerialize tests BlockHeader serialize and deserialize.
func TestBlockHeaderSerialize(t *testing.T) {
	baseBlockHdr := &BlockHeader{
		Version:    1,
		PrevBlock:  mainNetGenesisHash,
		MerkleRoot: mainNetGenesisMerkleRoot,
		Timestamp:  time.Unix(0x495fab29, 0),
		Bits:       0x1d00ffff,
		Nonce:      123123,
	}

	var buf bytes.Buffer
	if err := baseBlockHdr.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: unexpected error %v", err)
	}

	var got BlockHeader
	if err := got.Deserialize(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Deserialize: unexpected error %v", err)
	}
	if !reflect.DeepEqual(&got, baseBlockHdr) {
		t.Errorf("round-trip mismatch\n got: %s\nwant: %s",
			spew.Sdump(&got), spew.Sdump(baseBlockHdr))
	}
}

func TestMsgBlockIsProofOfStake(t *testing.T) {
	tests := []struct {
		name string
		txs  []*MsgTx
		want bool
	}{
		{name: "no transactions", txs: nil, want: false},
		{
			name: "coinbase only",
			txs: []*MsgTx{
				{TxIn: []*TxIn{{PreviousOutPoint: OutPoint{Index: ^uint32(0)}}}, TxOut: []*TxOut{{Value: 1}}},
			},
			want: false,
		},
		{
			name: "coinbase plus coinstake",
			txs: []*MsgTx{
				{TxIn: []*TxIn{{PreviousOutPoint: OutPoint{Index: ^uint32(0)}}}, TxOut: []*TxOut{{Value: 0}}},
				{
					TxIn:  []*TxIn{{PreviousOutPoint: OutPoint{Index: 3}}},
					TxOut: []*TxOut{{Value: 0}, {Value: 500}},
				},
			},
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &MsgBlock{Transactions: tc.txs}
			if got := m.IsProofOfStake(); got != tc.want {
				t.Errorf("IsProofOfStake() = %v, want %v", got, tc.want)
			}
		})
	}
}


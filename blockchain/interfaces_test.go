// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/Dracarys07/deeponion/wire"
)

func TestMemBlockTreeDBRoundTrip(t *testing.T) {
	db := NewMemBlockTreeDB()

	header := &wire.BlockHeader{Version: 1}
	hash := header.BlockHash()
	db.AddBlockHeader(hash, header)

	got, ok := db.FetchBlockHeader(hash)
	if !ok || got != header {
		t.Fatalf("FetchBlockHeader(%v) = (%v, %v), want (%v, true)", hash, got, ok, header)
	}

	tx := &wire.MsgTx{Timestamp: 42}
	loc := TxLocation{BlockHash: hash, Offset: 10}
	db.AddTransaction(hash, loc, tx)

	gotLoc, ok := db.ReadTxIndex(hash)
	if !ok || gotLoc != loc {
		t.Fatalf("ReadTxIndex(%v) = (%+v, %v), want (%+v, true)", hash, gotLoc, ok, loc)
	}

	gotTx, err := db.FetchTransaction(loc)
	if err != nil || gotTx != tx {
		t.Fatalf("FetchTransaction(%+v) = (%v, %v), want (%v, nil)", loc, gotTx, err, tx)
	}

	if _, err := db.FetchTransaction(TxLocation{Offset: 999}); err == nil {
		t.Fatalf("FetchTransaction(unregistered) = nil error, want non-nil")
	}
}

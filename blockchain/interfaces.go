// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Dracarys07/deeponion/wire"
)

// Coin is a UTXO view entry: everything check_proof_of_stake needs to know
// about a previous output without owning the full transaction.
type Coin struct {
	Height int32
	Value  int64
	Script []byte
}

// UtxoView is the narrow, read-only collaborator the kernel consults to
// resolve a coinstake's previous output. The block-file store, UTXO set
// management and write path all live outside this package; this package
// only ever reads through this interface.
type UtxoView interface {
	GetCoin(outpoint wire.OutPoint) (*Coin, bool)
}

// TxLocation is the on-disk position of a transaction within a block file,
// as returned by BlockTreeDB.ReadTxIndex.
type TxLocation struct {
	BlockHash chainhash.Hash
	Offset    uint32
}

// BlockTreeDB is the narrow collaborator giving access to the on-disk
// position of historical transactions, used to recover tx_prev_offset
// for a coinstake's kernel input without keeping the whole chain resident
// in memory.
type BlockTreeDB interface {
	ReadTxIndex(txHash chainhash.Hash) (TxLocation, bool)
	FetchBlockHeader(hash chainhash.Hash) (*wire.BlockHeader, bool)
	FetchTransaction(loc TxLocation) (*wire.MsgTx, error)
}

// Clock supplies the node's adjusted wall-clock time, consulted only to
// distinguish "chain is behind" (transient) from "coin ineligible"
// (permanent, non-fatal) when a forward walk runs out of chain.
type Clock interface {
	Now() int64
}

// MedianTimeSource is kept separate from Clock for parity with the
// teacher's naming of the adjusted-time collaborator threaded through the
// legacy protocol-version kernel variants; both describe the same single
// method.
type MedianTimeSource interface {
	AdjustedTime() int64
}

// MemUtxoView is a minimal in-memory UtxoView, the kind of test double the
// kernel's own test suite and a fixture-driven CLI use in place of a real
// chain-backed UTXO set.
type MemUtxoView struct {
	coins map[wire.OutPoint]*Coin
}

// NewMemUtxoView returns an empty MemUtxoView.
func NewMemUtxoView() *MemUtxoView {
	return &MemUtxoView{coins: make(map[wire.OutPoint]*Coin)}
}

// AddCoin registers outpoint as spendable with the given coin data.
func (v *MemUtxoView) AddCoin(outpoint wire.OutPoint, coin *Coin) {
	v.coins[outpoint] = coin
}

// GetCoin implements UtxoView.
func (v *MemUtxoView) GetCoin(outpoint wire.OutPoint) (*Coin, bool) {
	coin, ok := v.coins[outpoint]
	return coin, ok
}

// MemBlockTreeDB is a minimal in-memory BlockTreeDB, the counterpart to
// MemUtxoView for tests and fixture-driven hosts that have no real
// block-file store backing the transaction index.
type MemBlockTreeDB struct {
	headers map[chainhash.Hash]*wire.BlockHeader
	index   map[chainhash.Hash]TxLocation
	txs     map[TxLocation]*wire.MsgTx
}

// NewMemBlockTreeDB returns an empty MemBlockTreeDB.
func NewMemBlockTreeDB() *MemBlockTreeDB {
	return &MemBlockTreeDB{
		headers: make(map[chainhash.Hash]*wire.BlockHeader),
		index:   make(map[chainhash.Hash]TxLocation),
		txs:     make(map[TxLocation]*wire.MsgTx),
	}
}

// AddBlockHeader registers hash as the block header FetchBlockHeader
// should return.
func (db *MemBlockTreeDB) AddBlockHeader(hash chainhash.Hash, header *wire.BlockHeader) {
	db.headers[hash] = header
}

// AddTransaction registers txHash as located at loc, with tx as the
// transaction FetchTransaction should return for that location.
func (db *MemBlockTreeDB) AddTransaction(txHash chainhash.Hash, loc TxLocation, tx *wire.MsgTx) {
	db.index[txHash] = loc
	db.txs[loc] = tx
}

// ReadTxIndex implements BlockTreeDB.
func (db *MemBlockTreeDB) ReadTxIndex(txHash chainhash.Hash) (TxLocation, bool) {
	loc, ok := db.index[txHash]
	return loc, ok
}

// FetchBlockHeader implements BlockTreeDB.
func (db *MemBlockTreeDB) FetchBlockHeader(hash chainhash.Hash) (*wire.BlockHeader, bool) {
	header, ok := db.headers[hash]
	return header, ok
}

// FetchTransaction implements BlockTreeDB.
func (db *MemBlockTreeDB) FetchTransaction(loc TxLocation) (*wire.MsgTx, error) {
	tx, ok := db.txs[loc]
	if !ok {
		return nil, fmt.Errorf("MemBlockTreeDB: no transaction recorded at %+v", loc)
	}
	return tx, nil
}

// FixedClock is a Clock/MedianTimeSource test double returning a constant
// time, used by tests exercising the "chain is behind" transient path
// deterministically.
type FixedClock int64

// Now implements Clock.
func (c FixedClock) Now() int64 { return int64(c) }

// AdjustedTime implements MedianTimeSource.
func (c FixedClock) AdjustedTime() int64 { return int64(c) }

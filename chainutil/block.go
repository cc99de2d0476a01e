// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainutil pairs the wire-level block and transaction types with
// the derived data consensus code needs alongside them: a cached hash, a
// known height, and — for blocks — the PoS metadata of wire.Meta and the
// byte offset of each transaction within the serialized block. It plays
// the role peercoin-btcd/btcutil's ppc.go additions play over upstream
// btcutil.Block/Tx.
package chainutil

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Dracarys07/deeponion/wire"
)

// BlockHeightUnknown is returned by Height when a block hasn't been
// assigned a position in the chain yet.
const BlockHeightUnknown = int32(-1)

// TxOffsetUnknown is the offset value denoting a transaction that has not
// been placed in a block yet.
const TxOffsetUnknown = uint32(0)

// Block pairs a wire.MsgBlock with the metadata the PoS kernel reads
// alongside it.
type Block struct {
	msgBlock       *wire.MsgBlock
	meta           *wire.Meta
	height         int32
	hash           *chainhash.Hash
	serializedMeta []byte
}

// NewBlock returns a Block with unknown height and no meta attached yet.
func NewBlock(msgBlock *wire.MsgBlock) *Block {
	return &Block{msgBlock: msgBlock, height: BlockHeightUnknown}
}

// NewBlockWithMeta returns a Block carrying pre-computed meta, the
// equivalent of btcutil's NewBlockWithMetas.
func NewBlockWithMeta(msgBlock *wire.MsgBlock, meta *wire.Meta) *Block {
	return &Block{msgBlock: msgBlock, meta: meta, height: BlockHeightUnknown}
}

// MsgBlock returns the underlying wire message.
func (b *Block) MsgBlock() *wire.MsgBlock {
	return b.msgBlock
}

// Hash returns the (cached) block hash.
func (b *Block) Hash() *chainhash.Hash {
	if b.hash == nil {
		h := b.msgBlock.BlockHash()
		b.hash = &h
	}
	return b.hash
}

// Height returns the known height of the block, or BlockHeightUnknown.
func (b *Block) Height() int32 {
	return b.height
}

// SetHeight sets the known height of the block within the chain.
func (b *Block) SetHeight(height int32) {
	b.height = height
}

// Meta returns the block's PoS metadata, lazily allocating an empty one.
func (b *Block) Meta() *wire.Meta {
	if b.meta == nil {
		b.meta = new(wire.Meta)
	}
	return b.meta
}

// IsProofOfStake reports whether the block's second transaction is a
// coinstake.
func (b *Block) IsProofOfStake() bool {
	return b.msgBlock.IsProofOfStake()
}

// Transactions returns the wrapped transactions of the block, assigning
// each its index as it goes.
func (b *Block) Transactions() []*Tx {
	txs := make([]*Tx, len(b.msgBlock.Transactions))
	for i, msgTx := range b.msgBlock.Transactions {
		txs[i] = NewTx(msgTx)
		txs[i].SetIndex(i)
	}
	return txs
}

// MetaToBytes returns the serialized form of the block's meta, computing
// and caching it on first call.
func (b *Block) MetaToBytes() ([]byte, error) {
	if len(b.serializedMeta) != 0 {
		return b.serializedMeta, nil
	}
	serialized, err := MetaToBytes(b.Meta())
	if err != nil {
		return nil, err
	}
	b.serializedMeta = serialized
	return serialized, nil
}

// MetaFromBytes replaces the block's meta with the deserialized contents
// of serialized, caching serialized as-is.
func (b *Block) MetaFromBytes(serialized []byte) error {
	meta, err := MetaFromBytes(serialized)
	if err != nil {
		return err
	}
	b.meta = meta
	b.serializedMeta = serialized
	return nil
}

// Tx returns the i'th transaction in the block.
func (b *Block) Tx(i int) (*Tx, error) {
	if i < 0 || i >= len(b.msgBlock.Transactions) {
		return nil, errOutOfRange(i, len(b.msgBlock.Transactions))
	}
	tx := NewTx(b.msgBlock.Transactions[i])
	tx.SetIndex(i)
	return tx, nil
}

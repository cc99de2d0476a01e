// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainutil

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Dracarys07/deeponion/wire"
)

// Tx pairs a wire.MsgTx with the derived data the kernel and coin-age
// code read alongside it: a cached hash and its index within the block
// that contains it.
type Tx struct {
	msgTx *wire.MsgTx
	hash  *chainhash.Hash
	index int
}

// NewTx returns a Tx wrapping msgTx with an unknown index.
func NewTx(msgTx *wire.MsgTx) *Tx {
	return &Tx{msgTx: msgTx, index: TxIndexUnknown}
}

// TxIndexUnknown is returned by Index for a transaction not yet placed
// within a block.
const TxIndexUnknown = -1

// MsgTx returns the underlying wire message.
func (t *Tx) MsgTx() *wire.MsgTx {
	return t.msgTx
}

// Hash returns the (cached) transaction hash.
func (t *Tx) Hash() *chainhash.Hash {
	if t.hash == nil {
		h := hashMsgTx(t.msgTx)
		t.hash = &h
	}
	return t.hash
}

// Index returns the transaction's position within its containing block,
// or TxIndexUnknown.
func (t *Tx) Index() int {
	return t.index
}

// SetIndex records the transaction's position within its containing
// block.
func (t *Tx) SetIndex(index int) {
	t.index = index
}

// IsCoinBase reports whether the wrapped transaction is a coinbase.
func (t *Tx) IsCoinBase() bool {
	return t.msgTx.IsCoinBase()
}

// IsCoinStake reports whether the wrapped transaction is a coinstake.
func (t *Tx) IsCoinStake() bool {
	return t.msgTx.IsCoinStake()
}

func hashMsgTx(msgTx *wire.MsgTx) chainhash.Hash {
	var buf []byte
	buf = appendUint32(buf, uint32(msgTx.Version))
	buf = appendUint32(buf, msgTx.Timestamp)
	buf = appendUint32(buf, uint32(len(msgTx.TxIn)))
	for _, in := range msgTx.TxIn {
		buf = append(buf, in.PreviousOutPoint.Hash[:]...)
		buf = appendUint32(buf, in.PreviousOutPoint.Index)
		buf = appendUint32(buf, uint32(len(in.SignatureScript)))
		buf = append(buf, in.SignatureScript...)
		buf = appendUint32(buf, in.Sequence)
	}
	buf = appendUint32(buf, uint32(len(msgTx.TxOut)))
	for _, out := range msgTx.TxOut {
		buf = appendUint64(buf, uint64(out.Value))
		buf = appendUint32(buf, uint32(len(out.PkScript)))
		buf = append(buf, out.PkScript...)
	}
	buf = appendUint32(buf, msgTx.LockTime)
	return chainhash.DoubleHashH(buf)
}

func appendUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendUint64(buf []byte, v uint64) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func errOutOfRange(i, n int) error {
	return fmt.Errorf("transaction index %d out of range (have %d)", i, n)
}

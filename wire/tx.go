// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// OutPoint defines a bitcoin data type that is used to track previous
// transaction outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new bitcoin transaction outpoint point with the
// provided hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{Hash: *hash, Index: index}
}

// TxIn defines a bitcoin transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// TxOut defines a bitcoin transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// IsEmpty reports whether the output carries neither value nor script, the
// peercoin-lineage convention for a coinstake's "skip" output.
func (t *TxOut) IsEmpty() bool {
	return t.Value == 0 && len(t.PkScript) == 0
}

// MsgTx implements the transaction message. Unlike upstream btcd, it
// carries the PoS-lineage Timestamp and Version fields a coinstake kernel
// check reads directly.
type MsgTx struct {
	Version   int32
	Timestamp uint32
	TxIn      []*TxIn
	TxOut     []*TxOut
	LockTime  uint32
}

// IsCoinBase determines whether a transaction is a coinbase: exactly one
// input, referencing a null previous outpoint.
func (m *MsgTx) IsCoinBase() bool {
	if len(m.TxIn) != 1 {
		return false
	}
	prevOut := &m.TxIn[0].PreviousOutPoint
	return prevOut.Index == ^uint32(0) && prevOut.Hash == chainhash.Hash{}
}

// IsCoinStake determines whether a transaction is a coinstake: two or more
// outputs, first output empty, first input spending a non-null outpoint.
// https://github.com/ppcoin/ppcoin/blob/v0.4.0ppc/src/main.h
func (m *MsgTx) IsCoinStake() bool {
	if len(m.TxIn) == 0 || len(m.TxOut) < 2 {
		return false
	}
	prevOut := &m.TxIn[0].PreviousOutPoint
	if prevOut.Index == ^uint32(0) && prevOut.Hash == (chainhash.Hash{}) {
		return false
	}
	return m.TxOut[0].IsEmpty()
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction; used by the fee-floor calculation, not the kernel hash.
func (m *MsgTx) SerializeSize() int {
	n := 4 + 4 + 4 // Version, Timestamp, LockTime
	n += 4         // input count
	for _, in := range m.TxIn {
		n += chainhash.HashSize + 4 + 4 + len(in.SignatureScript)
	}
	n += 4 // output count
	for _, out := range m.TxOut {
		n += 8 + 4 + len(out.PkScript)
	}
	return n
}

// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Flags bitfield values for Meta.Flags, per the §3 data model: whether the
// block is itself proof-of-stake, its single stake-entropy bit, and whether
// a fresh stake modifier was generated at this block.
const (
	FlagProofOfStake           uint32 = 1 << 0
	FlagStakeEntropy           uint32 = 1 << 1
	FlagGeneratedStakeModifier uint32 = 1 << 2
)

// Meta carries the per-block PoS bookkeeping that rides alongside a block
// in the index but is not part of the block itself: the flags bitfield
// (proof-of-stake marker, entropy bit, generated-modifier marker), the
// modifier as of this block, its chained checksum, the kernel hash that
// justified the block, and the running mint/money-supply totals.
//
// This is the serializable slice of the §3 BlockIndexEntry data model: the
// fields a host persists to disk and restores with a block, rather than
// the pointer-graph fields (prev/next) that only make sense in memory.
type Meta struct {
	Flags                 uint32
	StakeModifier         uint64
	StakeModifierChecksum uint32
	HashProofOfStake      chainhash.Hash
	Mint                  int64
	MoneySupply           int64
	TxOffsets             []uint32
}

// Serialize writes the meta record in a fixed little-endian layout. This
// is the persisted form only; the §4.5 checksum chain hashes its own field
// sequence (parent checksum, flags, proof-of-stake hash, modifier), not
// this layout.
func (m *Meta) Serialize(w io.Writer) error {
	if err := writeElement(w, m.Flags); err != nil {
		return err
	}
	if err := writeElement(w, m.StakeModifier); err != nil {
		return err
	}
	if err := writeElement(w, m.StakeModifierChecksum); err != nil {
		return err
	}
	if err := writeElement(w, &m.HashProofOfStake); err != nil {
		return err
	}
	if err := writeElement(w, m.Mint); err != nil {
		return err
	}
	if err := writeElement(w, m.MoneySupply); err != nil {
		return err
	}
	if err := writeElement(w, uint32(len(m.TxOffsets))); err != nil {
		return err
	}
	for _, off := range m.TxOffsets {
		if err := writeElement(w, off); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads a meta record written by Serialize.
func (m *Meta) Deserialize(r io.Reader) error {
	if err := readElement(r, &m.Flags); err != nil {
		return err
	}
	if err := readElement(r, &m.StakeModifier); err != nil {
		return err
	}
	if err := readElement(r, &m.StakeModifierChecksum); err != nil {
		return err
	}
	if err := readElement(r, &m.HashProofOfStake); err != nil {
		return err
	}
	if err := readElement(r, &m.Mint); err != nil {
		return err
	}
	if err := readElement(r, &m.MoneySupply); err != nil {
		return err
	}
	var n uint32
	if err := readElement(r, &n); err != nil {
		return err
	}
	m.TxOffsets = make([]uint32, n)
	for i := range m.TxOffsets {
		if err := readElement(r, &m.TxOffsets[i]); err != nil {
			return err
		}
	}
	return nil
}

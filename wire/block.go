// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockHeader defines information about a block and is used in the block
// message (MsgBlock).
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  time.Time
	Bits       uint32
	Nonce      uint32
}

// BlockHash computes the block identifier hash for the given header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = h.Serialize(&buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Serialize encodes a block header in the canonical little-endian,
// fixed-width form the kernel's checksum chain and difficulty checks rely
// on being bit-exact.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if err := writeElement(w, h.Version); err != nil {
		return err
	}
	if err := writeElement(w, h.PrevBlock); err != nil {
		return err
	}
	if err := writeElement(w, h.MerkleRoot); err != nil {
		return err
	}
	if err := writeElement(w, uint32(h.Timestamp.Unix())); err != nil {
		return err
	}
	if err := writeElement(w, h.Bits); err != nil {
		return err
	}
	return writeElement(w, h.Nonce)
}

// Deserialize decodes a block header from its canonical wire form.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	if err := readElement(r, &h.Version); err != nil {
		return err
	}
	if err := readElement(r, &h.PrevBlock); err != nil {
		return err
	}
	if err := readElement(r, &h.MerkleRoot); err != nil {
		return err
	}
	var ts uint32
	if err := readElement(r, &ts); err != nil {
		return err
	}
	h.Timestamp = time.Unix(int64(ts), 0)
	if err := readElement(r, &h.Bits); err != nil {
		return err
	}
	return readElement(r, &h.Nonce)
}

// MsgBlock implements the block message. It carries the peercoin-lineage
// Signature field (the minter's signature over the block hash) absent from
// upstream btcd's MsgBlock.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
	Signature    []byte
}

// BlockHash returns the double-SHA-256 hash of the block header.
func (m *MsgBlock) BlockHash() chainhash.Hash {
	return m.Header.BlockHash()
}

// IsProofOfStake reports whether the block's second transaction is a
// coinstake, the peercoin-lineage block-type discriminant.
// https://github.com/ppcoin/ppcoin/blob/v0.4.0ppc/src/main.h#L962
func (m *MsgBlock) IsProofOfStake() bool {
	return len(m.Transactions) > 1 && m.Transactions[1].IsCoinStake()
}

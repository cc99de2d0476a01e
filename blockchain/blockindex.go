// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Dracarys07/deeponion/wire"
)

// HeaderCtx is the narrow view of a block index entry the super-majority
// version-counting walk needs: its own version/PoS-ness and a way to step
// to its predecessor.
type HeaderCtx interface {
	Parent() HeaderCtx
	IsProofOfStake() bool
	Version() int32
}

// ChainCtx is the narrow view of the active chain a next-block difficulty
// calculation needs.
type ChainCtx interface {
	ChainParams() interface{}
	BestHeight() int32
}

// blockNode holds metadata for a single block tied into the block DAG.
// Every node is held in the owning BlockIndex's hash-keyed map; parent and
// next are direct pointers to other nodes, not hashes or arena indices
// resolved through that map.
type blockNode struct {
	hash      chainhash.Hash
	parent    *blockNode
	next      *blockNode
	height    int32
	timestamp int64
	bits      uint32
	version   int32
	header    wire.BlockHeader
	meta      *wire.Meta
}

// newBlockNode returns a blockNode populated from header, not yet linked
// into any BlockIndex.
func newBlockNode(header *wire.BlockHeader, height int32) *blockNode {
	node := &blockNode{
		hash:      header.BlockHash(),
		height:    height,
		timestamp: header.Timestamp.Unix(),
		bits:      header.Bits,
		version:   header.Version,
		header:    *header,
		meta:      new(wire.Meta),
	}
	return node
}

// Header returns the node's block header.
func (node *blockNode) Header() *wire.BlockHeader {
	return &node.header
}

// Hash returns the node's block hash.
func (node *blockNode) Hash() *chainhash.Hash {
	return &node.hash
}

// Height returns the node's height.
func (node *blockNode) Height() int32 {
	return node.height
}

// Version returns the node's block version, part of the HeaderCtx
// interface used by the super-majority vote count.
func (node *blockNode) Version() int32 {
	return node.version
}

// Parent returns the node's parent as a HeaderCtx, or a nil interface
// value if node is the genesis node. Named to satisfy HeaderCtx; callers
// needing the concrete *blockNode use the parent field directly within
// the package.
func (node *blockNode) Parent() HeaderCtx {
	if node.parent == nil {
		return nil
	}
	return node.parent
}

// IsProofOfStake reports whether the node's block carried a coinstake.
func (node *blockNode) IsProofOfStake() bool {
	return isProofOfStake(node.meta)
}

// StakeModifier returns the node's computed stake modifier.
func (node *blockNode) StakeModifier() uint64 {
	return node.meta.StakeModifier
}

// StakeModifierChecksum returns the node's chained checksum.
func (node *blockNode) StakeModifierChecksum() uint32 {
	return node.meta.StakeModifierChecksum
}

// IsGeneratedStakeModifier reports whether the node's modifier was freshly
// generated rather than inherited from an ancestor.
func (node *blockNode) IsGeneratedStakeModifier() bool {
	return isGeneratedStakeModifier(node.meta)
}

// StakeEntropyBit returns the node's stored stake-entropy bit.
func (node *blockNode) StakeEntropyBit() uint32 {
	return getMetaStakeEntropyBit(node.meta)
}

// Meta returns the node's full PoS metadata record, the shape
// StoreBlockMeta/FetchBlockMeta persist, rather than one field at a time.
func (node *blockNode) Meta() *wire.Meta {
	return node.meta
}

// BlockIndex is the in-memory arena holding every known blockNode, indexed
// by hash. It is the BlockIndex collaborator of the kernel's external
// interfaces: random access by hash, traversal via parent/next.
type BlockIndex struct {
	index map[chainhash.Hash]*blockNode
}

// NewBlockIndex returns an empty BlockIndex.
func NewBlockIndex() *BlockIndex {
	return &BlockIndex{index: make(map[chainhash.Hash]*blockNode)}
}

// LookupNode returns the node identified by hash, or nil if it isn't
// present in the index.
func (bi *BlockIndex) LookupNode(hash *chainhash.Hash) *blockNode {
	if hash == nil {
		return nil
	}
	return bi.index[*hash]
}

// AddNode inserts node into the index, keyed by its hash, and links it as
// the child of its parent (by PrevBlock hash) if the parent is present.
func (bi *BlockIndex) AddNode(node *blockNode) {
	bi.index[node.hash] = node
	if parent := bi.LookupNode(&node.header.PrevBlock); parent != nil {
		node.parent = parent
	}
}

// SetNext records node as the active-chain successor of its parent. Only
// the active chain carries a populated next pointer; side-chain nodes
// never do.
func (bi *BlockIndex) SetNext(node *blockNode) {
	if node.parent != nil {
		node.parent.next = node
	}
}

// HaveBlock reports whether hash is present in the index.
func (bi *BlockIndex) HaveBlock(hash *chainhash.Hash) bool {
	return bi.LookupNode(hash) != nil
}

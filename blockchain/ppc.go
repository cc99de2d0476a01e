// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/Dracarys07/deeponion/chaincfg"

	"github.com/Dracarys07/deeponion/wire"
)

// MinTxFee is the minimum transaction fee, expressed in the chain's
// smallest subdivision.
const MinTxFee int64 = Cent / 10

// MaxMoney is the maximum number of smallest-subdivision units that can
// ever exist.
const MaxMoney int64 = 2000000000 * CoinUnit

// BlockChain threads the consensus parameters, the block index, a stake-
// seen tracker and a collaborator set through every kernel entry point,
// in place of the process-wide mutables the design notes call out as a
// testability hook in the historical source (§9).
type BlockChain struct {
	chainParams *chaincfg.Params
	index       *BlockIndex
	stakeSeen   *StakeSeenTracker
	treeDB      BlockTreeDB
	utxo        UtxoView
}

// New returns a BlockChain wired to the given consensus parameters and
// collaborators. treeDB and utxo may be nil for call paths that only
// touch the block index (stake modifier computation, checksum chaining).
func New(params *chaincfg.Params, treeDB BlockTreeDB, utxo UtxoView) *BlockChain {
	return &BlockChain{
		chainParams: params,
		index:       NewBlockIndex(),
		stakeSeen:   NewStakeSeenTracker(),
		treeDB:      treeDB,
		utxo:        utxo,
	}
}

// ChainParams returns the consensus parameters this chain was built with.
func (b *BlockChain) ChainParams() *chaincfg.Params {
	return b.chainParams
}

// Index returns the chain's block index, for callers building up the DAG
// ahead of calling into the kernel.
func (b *BlockChain) Index() *BlockIndex {
	return b.index
}

// IsCoinStakeTx reports whether tx is a coinstake.
func IsCoinStakeTx(tx *wire.MsgTx) bool {
	return tx.IsCoinStake()
}

// IsCoinBaseTx reports whether tx is a coinbase.
func IsCoinBaseTx(tx *wire.MsgTx) bool {
	return tx.IsCoinBase()
}

// isProofOfStake reports whether meta's flags mark a proof-of-stake
// block.
func isProofOfStake(meta *wire.Meta) bool {
	return meta.Flags&wire.FlagProofOfStake != 0
}

// setProofOfStake sets or clears the proof-of-stake flag on meta.
func setProofOfStake(meta *wire.Meta, pos bool) {
	if pos {
		meta.Flags |= wire.FlagProofOfStake
	} else {
		meta.Flags &^= wire.FlagProofOfStake
	}
}

// isGeneratedStakeModifier reports whether meta's flags mark a freshly
// generated stake modifier rather than an inherited one.
func isGeneratedStakeModifier(meta *wire.Meta) bool {
	return meta.Flags&wire.FlagGeneratedStakeModifier != 0
}

// setGeneratedStakeModifier sets or clears the generated-modifier flag on
// meta.
func setGeneratedStakeModifier(meta *wire.Meta, generated bool) {
	if generated {
		meta.Flags |= wire.FlagGeneratedStakeModifier
	} else {
		meta.Flags &^= wire.FlagGeneratedStakeModifier
	}
}

// getMetaStakeEntropyBit returns the block's stored stake-entropy bit.
func getMetaStakeEntropyBit(meta *wire.Meta) uint32 {
	if meta.Flags&wire.FlagStakeEntropy != 0 {
		return 1
	}
	return 0
}

// setMetaStakeEntropyBit stores entropyBit (0 or 1) on meta's flags.
func setMetaStakeEntropyBit(meta *wire.Meta, entropyBit uint32) {
	if entropyBit == 0 {
		meta.Flags &^= wire.FlagStakeEntropy
	} else {
		meta.Flags |= wire.FlagStakeEntropy
	}
}

// CalcMintAndMoneySupply totals a connecting block's mint (net new coin,
// from fees plus any coinstake/coinbase overshoot) and running money
// supply, chaining from the parent node's own totals.
func CalcMintAndMoneySupply(node *blockNode, block *wire.MsgBlock, utxo UtxoView) error {
	var valueIn, valueOut, fees int64

	for _, tx := range block.Transactions {
		var txValueOut int64
		for _, out := range tx.TxOut {
			txValueOut += out.Value
		}

		if tx.IsCoinBase() {
			valueOut += txValueOut
			continue
		}

		var txValueIn int64
		for _, in := range tx.TxIn {
			coin, ok := utxo.GetCoin(in.PreviousOutPoint)
			if !ok {
				return fmt.Errorf("CalcMintAndMoneySupply: failed to find outpoint for %v", in.PreviousOutPoint.Hash)
			}
			txValueIn += coin.Value
		}
		valueIn += txValueIn
		valueOut += txValueOut
		if !tx.IsCoinStake() {
			fees += txValueIn - txValueOut
		}
	}

	node.meta.Mint = valueOut - valueIn + fees
	if node.parent == nil {
		node.meta.MoneySupply = valueOut - valueIn
	} else {
		node.meta.MoneySupply = node.parent.meta.MoneySupply + valueOut - valueIn
	}

	log.Debugf("CalcMintAndMoneySupply: height=%d mint=%d moneySupply=%d", node.height, node.meta.Mint, node.meta.MoneySupply)
	return nil
}

// ConnectHeader links header onto the chain as height's block, marks it
// proof-of-stake per isPoS, and runs it through addToBlockIndex to derive
// its entropy bit, stake modifier and checksum — the sequence a host
// performs once per connected block, exposed here so a fixture-driven
// caller can replay a chain without its own storage layer.
func (b *BlockChain) ConnectHeader(header *wire.BlockHeader, height int32, isPoS bool, sig []byte) (*blockNode, error) {
	node := newBlockNode(header, height)
	b.index.AddNode(node)
	b.index.SetNext(node)
	setProofOfStake(node.meta, isPoS)

	if err := b.addToBlockIndex(node, sig); err != nil {
		return nil, err
	}
	return node, nil
}

// CheckProofOfStake implements §4.4.3: resolve a coinstake's previous
// transaction through the chain's BlockTreeDB/UtxoView collaborators,
// enforce coinbase maturity and the duplicate-stake gate, and run the
// resolved inputs through checkBlockProofOfStake. A block that isn't
// proof-of-stake is accepted trivially.
func (b *BlockChain) CheckProofOfStake(node *blockNode, msgBlock *wire.MsgBlock, clock Clock) error {
	if !msgBlock.IsProofOfStake() {
		return nil
	}
	if b.treeDB == nil || b.utxo == nil {
		return fmt.Errorf("CheckProofOfStake: chain has no BlockTreeDB/UtxoView wired")
	}

	coinstake := msgBlock.Transactions[1]
	prevOut := coinstake.TxIn[0].PreviousOutPoint

	loc, ok := b.treeDB.ReadTxIndex(prevOut.Hash)
	if !ok {
		return ruleError(ErrCorruptTxOffset, fmt.Sprintf(
			"CheckProofOfStake: no tx index entry for %v", prevOut.Hash))
	}

	blockFrom := b.index.LookupNode(&loc.BlockHash)
	if blockFrom == nil {
		return ruleError(ErrMissingParent, fmt.Sprintf(
			"CheckProofOfStake: block %v not present in block index", loc.BlockHash))
	}

	txPrev, err := b.treeDB.FetchTransaction(loc)
	if err != nil {
		return ruleError(ErrCorruptTxOffset, fmt.Sprintf(
			"CheckProofOfStake: failed to fetch previous transaction: %v", err))
	}

	coin, ok := b.utxo.GetCoin(prevOut)
	if !ok {
		return ruleError(ErrMissingUtxo, fmt.Sprintf(
			"CheckProofOfStake: no UTXO entry for %v", prevOut))
	}
	if node.height-coin.Height < b.chainParams.CoinbaseMaturity {
		return ruleError(ErrImmatureCoin, fmt.Sprintf(
			"CheckProofOfStake: tried to stake at depth %d, minimum is %d",
			node.height-coin.Height, b.chainParams.CoinbaseMaturity))
	}

	stake := Stake{PrevOut: prevOut, Time: int64(coinstake.Timestamp)}
	if err := b.stakeSeen.CheckDuplicateStake(stake, false); err != nil {
		return err
	}

	if err := b.checkBlockProofOfStake(node, msgBlock, blockFrom, txPrev, loc.Offset, clock); err != nil {
		return err
	}
	b.stakeSeen.MarkSeen(stake)
	return nil
}

// ConnectBlock runs the full per-block acceptance sequence a host performs
// once a block is about to join the active chain: link the header into the
// index via ConnectHeader, verify the minter's signature, and — for a
// proof-of-stake block — resolve and check its coinstake via
// CheckProofOfStake.
func (b *BlockChain) ConnectBlock(block *wire.MsgBlock, height int32, clock Clock) (*blockNode, error) {
	isPoS := block.IsProofOfStake()

	node, err := b.ConnectHeader(&block.Header, height, isPoS, block.Signature)
	if err != nil {
		return nil, err
	}

	if !CheckBlockSignature(block, b.chainParams) {
		return nil, ruleError(ErrBadBlockSignature, "ConnectBlock: bad block signature")
	}

	if err := b.CheckProofOfStake(node, block, clock); err != nil {
		return nil, err
	}
	return node, nil
}

// GetMinFee calculates the minimum required fee for a transaction based
// on its serialized size.
func GetMinFee(tx *wire.MsgTx) int64 {
	size := tx.SerializeSize()
	minFee := (1 + int64(size)/1000) * MinTxFee
	if minFee > MaxMoney {
		minFee = MaxMoney
	}
	return minFee
}

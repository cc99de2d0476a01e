// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"sort"

	"github.com/Dracarys07/deeponion/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Dracarys07/deeponion/wire"
)

var zeroHash chainhash.Hash

// writeElement serializes the fixed-width fields the kernel hashes in
// little-endian form, the same element-at-a-time scheme wire uses for
// message encoding.
func writeElement(w io.Writer, element interface{}) error {
	var scratch [8]byte

	switch e := element.(type) {
	case uint32:
		binary.LittleEndian.PutUint32(scratch[0:4], e)
		_, err := w.Write(scratch[0:4])
		return err

	case uint64:
		binary.LittleEndian.PutUint64(scratch[0:8], e)
		_, err := w.Write(scratch[0:8])
		return err

	case chainhash.Hash:
		_, err := w.Write(e[:])
		return err

	case *chainhash.Hash:
		_, err := w.Write(e[:])
		return err
	}

	return fmt.Errorf("writeElement: unsupported type %T", element)
}

type blockTimeHash struct {
	time int64
	hash chainhash.Hash
}

type blockTimeHashSorter []blockTimeHash

// Len is part of sort.Interface.
func (s blockTimeHashSorter) Len() int { return len(s) }

// Swap is part of sort.Interface.
func (s blockTimeHashSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Less orders candidates ascending by time, breaking ties by the hash's
// big-endian magnitude so the sort is a deterministic total order even
// without stability — the spec's §4.3.2 step 5 note.
func (s blockTimeHashSorter) Less(i, j int) bool {
	if s[i].time == s[j].time {
		bi, bj := s[i].hash[:], s[j].hash[:]
		for k := chainhash.HashSize - 1; k >= 0; k-- {
			if bi[k] < bj[k] {
				return true
			} else if bi[k] > bj[k] {
				return false
			}
		}
		return false
	}
	return s[i].time < s[j].time
}

// getLastStakeModifier walks back from pindex via parent to the first
// block carrying GENERATED_STAKE_MODIFIER and returns its modifier and
// generation time.
func getLastStakeModifier(pindex *blockNode) (modifier uint64, modifierTime int64, err error) {
	if pindex == nil {
		return 0, 0, fmt.Errorf("getLastStakeModifier: nil pindex")
	}
	for pindex.parent != nil && !isGeneratedStakeModifier(pindex.meta) {
		pindex = pindex.parent
	}
	if !isGeneratedStakeModifier(pindex.meta) {
		return 0, 0, fmt.Errorf("getLastStakeModifier: no generation at genesis block")
	}
	return pindex.meta.StakeModifier, pindex.timestamp, nil
}

// getStakeModifierSelectionIntervalSection computes section(n) of §4.3.1.
func getStakeModifierSelectionIntervalSection(params *chaincfg.Params, section int) int64 {
	return params.ModifierInterval * 63 /
		(63 + ((63 - int64(section)) * (ModifierIntervalRatio - 1)))
}

// getStakeModifierSelectionInterval computes S, the total selection
// interval of §4.3.1 — the sum of all 64 section durations, derived
// rather than hard-coded.
func getStakeModifierSelectionInterval(params *chaincfg.Params) int64 {
	var total int64
	for section := 0; section < 64; section++ {
		total += getStakeModifierSelectionIntervalSection(params, section)
	}
	return total
}

// selectBlockFromCandidates implements §4.3.3: iterate candidates in
// ascending-time order, skipping already-selected blocks, stopping once a
// winner is chosen and a later candidate's time exceeds stop.
func selectBlockFromCandidates(
	index *BlockIndex, sortedByTime []blockTimeHash, selected map[chainhash.Hash]bool,
	stop int64, stakeModifierPrev uint64) (winner *blockNode, err error) {

	var bestHash chainhash.Hash
	haveWinner := false

	for _, item := range sortedByTime {
		candidate := index.LookupNode(&item.hash)
		if candidate == nil {
			return nil, fmt.Errorf("selectBlockFromCandidates: failed to find block index for candidate block %s", item.hash)
		}
		if haveWinner && candidate.timestamp > stop {
			break
		}
		if selected[candidate.hash] {
			continue
		}

		var proofHash chainhash.Hash
		if candidate.IsProofOfStake() {
			proofHash = candidate.meta.HashProofOfStake
		} else {
			proofHash = candidate.hash
		}

		var buf bytes.Buffer
		buf.Write(proofHash[:])
		if err := writeElement(&buf, stakeModifierPrev); err != nil {
			return nil, err
		}
		selectionHash, err := chainhash.NewHash(chainhash.DoubleHashB(buf.Bytes()))
		if err != nil {
			return nil, err
		}

		// The selection hash of a proof-of-stake candidate is divided by
		// 2**32, making it 2**32 times more likely to win than a
		// proof-of-work one, preserving PoS energy efficiency (§4.3.3).
		if candidate.IsProofOfStake() {
			shifted := new(big.Int).Rsh(HashToBig(selectionHash), 32)
			selectionHash, err = bigToShaHash(shifted)
			if err != nil {
				return nil, err
			}
		}

		if haveWinner && HashToBig(selectionHash).Cmp(HashToBig(&bestHash)) >= 0 {
			continue
		}
		haveWinner = true
		bestHash = *selectionHash
		winner = candidate
	}

	log.Debugf("selectBlockFromCandidates: selection hash=%v", bestHash)
	return winner, nil
}

// computeNextStakeModifier implements §4.3.2.
func (b *BlockChain) computeNextStakeModifier(current *blockNode) (modifier uint64, generated bool, err error) {
	prev := current.parent
	if prev == nil {
		return 0, true, nil // genesis block's modifier is 0
	}

	lastModifier, modifierTime, err := getLastStakeModifier(prev)
	if err != nil {
		return 0, false, fmt.Errorf("computeNextStakeModifier: unable to get last modifier: %v", err)
	}

	if (modifierTime / b.chainParams.ModifierInterval) >= (prev.timestamp / b.chainParams.ModifierInterval) {
		log.Debugf("computeNextStakeModifier: no new interval, keep current modifier: height=%d time=%d",
			prev.height, prev.timestamp)
		return lastModifier, false, nil
	}

	var sortedByTime []blockTimeHash
	selectionInterval := getStakeModifierSelectionInterval(b.chainParams)
	selectionStart := (prev.timestamp/b.chainParams.ModifierInterval)*b.chainParams.ModifierInterval - selectionInterval
	for node := prev; node != nil && node.timestamp >= selectionStart; node = node.parent {
		sortedByTime = append(sortedByTime, blockTimeHash{node.timestamp, node.hash})
	}
	// A reverse-then-sort is semantically equivalent to a direct stable
	// sort by time over the ancestor set collected newest-first; kept
	// as two steps to mirror the historical implementation exactly.
	for i, j := 0, len(sortedByTime)-1; i < j; i, j = i+1, j-1 {
		sortedByTime[i], sortedByTime[j] = sortedByTime[j], sortedByTime[i]
	}
	sort.Sort(blockTimeHashSorter(sortedByTime))

	var newModifier uint64
	stop := selectionStart
	selected := make(map[chainhash.Hash]bool)
	rounds := len(sortedByTime)
	if rounds > 64 {
		rounds = 64
	}
	for round := 0; round < rounds; round++ {
		stop += getStakeModifierSelectionIntervalSection(b.chainParams, round)
		picked, err := selectBlockFromCandidates(b.index, sortedByTime, selected, stop, lastModifier)
		if err != nil {
			return 0, false, fmt.Errorf("computeNextStakeModifier: unable to select block at round %d: %v", round, err)
		}
		newModifier |= uint64(getMetaStakeEntropyBit(picked.meta)) << uint64(round)
		selected[picked.hash] = true
		log.Debugf("computeNextStakeModifier: round %d stop=%d height=%d bit=%d modifier=%x",
			round, stop, picked.height, getMetaStakeEntropyBit(picked.meta), newModifier)
	}

	log.Debugf("computeNextStakeModifier: new modifier=%x time=%d height=%d", newModifier, prev.timestamp, current.height)
	return newModifier, true, nil
}

// getKernelStakeModifier implements §4.4.1: walk forward from blockFrom
// until a block whose time ≥ t0+S is reached, tracking the most recently
// generated modifier along the way.
func (b *BlockChain) getKernelStakeModifier(blockFrom *blockNode, clock Clock) (
	modifier uint64, modifierHeight int32, modifierTime int64, ok bool, err error) {

	modifierHeight = blockFrom.height
	modifierTime = blockFrom.timestamp
	selectionInterval := getStakeModifierSelectionInterval(b.chainParams)

	node := blockFrom
	for modifierTime < blockFrom.timestamp+selectionInterval {
		if node.next == nil {
			// Reached the best block before satisfying the
			// selection interval: either the local chain is
			// genuinely behind (transient), or the modifier is
			// simply not available yet for this coin.
			if blockFrom.timestamp+b.chainParams.StakeMinAge-selectionInterval > clock.Now() {
				return 0, 0, 0, false, transientf(
					"getKernelStakeModifier: best block %v at height %d too old for stake",
					node.hash, node.height)
			}
			return 0, 0, 0, false, nil
		}
		node = node.next
		if isGeneratedStakeModifier(node.meta) {
			modifierHeight = node.height
			modifierTime = node.timestamp
		}
	}
	modifier = node.meta.StakeModifier
	return modifier, modifierHeight, modifierTime, true, nil
}

// KernelProof is the outcome of checkStakeKernelHash: the proof-of-stake
// hash to store on the block plus the target it was checked against, for
// callers wanting to log or persist both.
type KernelProof struct {
	HashProofOfStake *chainhash.Hash
	TargetProofOfStake *big.Int
}

// checkStakeKernelHash implements §4.4.2. Preconditions that fail return a
// RuleError (consensus-fatal); a kernel modifier that is not yet available
// or a hash above target returns ok=false with a nil error, while a local
// chain that is behind returns the transient error of
// getKernelStakeModifier.
func (b *BlockChain) checkStakeKernelHash(
	bits uint32, blockFrom *blockNode, txPrevOffset uint32, txPrev *wire.MsgTx,
	prevout *wire.OutPoint, timeTx int64, clock Clock) (proof *KernelProof, ok bool, err error) {

	timeTxPrev := int64(txPrev.Timestamp)
	if timeTxPrev == 0 {
		timeTxPrev = blockFrom.timestamp
	}
	if timeTx < timeTxPrev {
		return nil, false, ruleError(ErrTimeViolation, "checkStakeKernelHash: nTime violation")
	}

	timeBlockFrom := blockFrom.timestamp
	if timeBlockFrom+b.chainParams.StakeMinAge > timeTx {
		return nil, false, ruleError(ErrMinAge, "checkStakeKernelHash: min age violation")
	}

	targetPerCoinDay := CompactToBig(bits)
	valuePrev := txPrev.TxOut[prevout.Index].Value

	coinDayWeight := new(big.Int).Div(
		new(big.Int).Div(
			new(big.Int).Mul(big.NewInt(valuePrev), big.NewInt(Weight(b.chainParams, timeTxPrev, timeTx))),
			big.NewInt(CoinUnit)),
		big.NewInt(24*60*60))
	targetProof := new(big.Int).Mul(coinDayWeight, targetPerCoinDay)

	modifier, modifierHeight, modifierTime, ok, err := b.getKernelStakeModifier(blockFrom, clock)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil // not eligible yet
	}

	var buf bytes.Buffer
	if err := writeElement(&buf, modifier); err != nil {
		return nil, false, err
	}
	if err := writeElement(&buf, uint32(timeBlockFrom)); err != nil {
		return nil, false, err
	}
	if err := writeElement(&buf, txPrevOffset); err != nil {
		return nil, false, err
	}
	if err := writeElement(&buf, uint32(timeTxPrev)); err != nil {
		return nil, false, err
	}
	if err := writeElement(&buf, prevout.Index); err != nil {
		return nil, false, err
	}
	if err := writeElement(&buf, uint32(timeTx)); err != nil {
		return nil, false, err
	}

	hashProof, err := chainhash.NewHash(chainhash.DoubleHashB(buf.Bytes()))
	if err != nil {
		return nil, false, err
	}

	log.Debugf("checkStakeKernelHash: modifier=%x height=%d timestamp=%d hashProof=%v",
		modifier, modifierHeight, modifierTime, hashProof)

	if HashToBig(hashProof).Cmp(targetProof) > 0 {
		return &KernelProof{hashProof, targetProof}, false, nil
	}

	return &KernelProof{hashProof, targetProof}, true, nil
}

// checkTxProofOfStake implements §4.4.3 against an already-located
// previous transaction, its block and its offset within that block — the
// lookups a BlockTreeDB/UtxoView pair perform are the caller's job.
func (b *BlockChain) checkTxProofOfStake(
	blockFrom *blockNode, tx *wire.MsgTx, txPrevOffset uint32, txPrev *wire.MsgTx,
	clock Clock, bits uint32, blockTime int64) (*KernelProof, error) {

	if !tx.IsCoinStake() {
		return nil, ruleError(ErrNotCoinStake, "checkTxProofOfStake: called on non-coinstake")
	}

	txin := tx.TxIn[0]
	timeTx := int64(tx.Timestamp)
	if timeTx == 0 {
		timeTx = blockTime
	}

	proof, ok, err := b.checkStakeKernelHash(bits, blockFrom, txPrevOffset, txPrev, &txin.PreviousOutPoint, timeTx, clock)
	if err != nil {
		return nil, err
	}
	if !ok {
		var hp *chainhash.Hash
		if proof != nil {
			hp = proof.HashProofOfStake
		}
		return nil, ruleError(ErrKernelHashTooHigh, fmt.Sprintf(
			"checkTxProofOfStake: check kernel failed on coinstake, hashProof=%v", hp))
	}
	return proof, nil
}

// checkBlockProofOfStake validates the coinstake of a PoS block given its
// already-resolved predecessor transaction, marking the result onto the
// node's own meta on success.
func (b *BlockChain) checkBlockProofOfStake(
	node *blockNode, msgBlock *wire.MsgBlock, blockFrom *blockNode, txPrev *wire.MsgTx, txPrevOffset uint32, clock Clock) error {

	if !msgBlock.IsProofOfStake() {
		return nil
	}

	proof, err := b.checkTxProofOfStake(blockFrom, msgBlock.Transactions[1], txPrevOffset, txPrev,
		clock, msgBlock.Header.Bits, msgBlock.Header.Timestamp.Unix())
	if err != nil {
		return err
	}

	setProofOfStake(node.meta, true)
	node.meta.HashProofOfStake = *proof.HashProofOfStake
	log.Debugf("checkBlockProofOfStake: proof of stake for block %v = %v", node.hash, proof.HashProofOfStake)
	return nil
}

// addToBlockIndex computes and records every piece of PoS bookkeeping a
// freshly connected block needs: its entropy bit, its stake modifier, and
// the resulting checksum, gated against the hard checkpoint table.
func (b *BlockChain) addToBlockIndex(node *blockNode, sig []byte) error {
	meta := node.meta

	entropyBit, err := getStakeEntropyBit(b.chainParams, &node.hash, sig)
	if err != nil {
		return fmt.Errorf("addToBlockIndex: GetStakeEntropyBit() failed: %v", err)
	}
	setMetaStakeEntropyBit(meta, entropyBit)

	modifier, generated, err := b.computeNextStakeModifier(node)
	if err != nil {
		return fmt.Errorf("addToBlockIndex: computeNextStakeModifier() failed: %v", err)
	}
	meta.StakeModifier = modifier
	setGeneratedStakeModifier(meta, generated)

	checksum, err := b.getStakeModifierChecksum(node)
	if err != nil {
		return fmt.Errorf("addToBlockIndex: getStakeModifierChecksum() failed: %v", err)
	}
	meta.StakeModifierChecksum = checksum

	log.Debugf("addToBlockIndex: height=%d modifier=%x checksum=%x", node.height, meta.StakeModifier, meta.StakeModifierChecksum)

	if !b.checkStakeModifierCheckpoints(node.height, meta.StakeModifierChecksum) {
		return ruleError(ErrCheckpointMismatch, fmt.Sprintf(
			"addToBlockIndex: rejected by stake modifier checkpoint height=%d checksum=%x", node.height, meta.StakeModifierChecksum))
	}
	return nil
}

// getStakeModifierChecksum implements §4.5's checksum formula.
func (b *BlockChain) getStakeModifierChecksum(node *blockNode) (uint32, error) {
	var buf bytes.Buffer
	if node.parent != nil {
		if err := writeElement(&buf, node.parent.meta.StakeModifierChecksum); err != nil {
			return 0, err
		}
	}
	meta := node.meta
	if err := writeElement(&buf, meta.Flags); err != nil {
		return 0, err
	}
	buf.Write(meta.HashProofOfStake[:])
	if err := writeElement(&buf, meta.StakeModifier); err != nil {
		return 0, err
	}

	hash, err := chainhash.NewHash(chainhash.DoubleHashB(buf.Bytes()))
	if err != nil {
		return 0, err
	}

	// Most-significant 32 bits of the 256-bit magnitude, i.e.
	// (be_uint256(H) >> 224).
	checksum := new(big.Int).Rsh(HashToBig(hash), 256-32)
	return uint32(checksum.Uint64()), nil
}

// checkStakeModifierCheckpoints implements the checkpoint gate of §4.5.
func (b *BlockChain) checkStakeModifierCheckpoints(height int32, checksum uint32) bool {
	if checkpoint, ok := b.chainParams.StakeModifierCheckpoints[height]; ok {
		return checksum == checkpoint
	}
	return true
}

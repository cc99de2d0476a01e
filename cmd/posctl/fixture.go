// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Dracarys07/deeponion/blockchain"
	"github.com/Dracarys07/deeponion/chaincfg"
	"github.com/Dracarys07/deeponion/wire"
)

// fixtureBlock is one entry of a fixture file's chain: just enough of a
// wire.BlockHeader to drive the kernel, plus the PoS bookkeeping a real
// host would have already computed and persisted when the block was
// connected. The chain is implicitly sequential — block i's PrevBlock is
// block i-1's own computed hash — rather than carrying its own hash
// fields, since a fixture's block hash is a function of its header, not
// an independent value a file could assert.
type fixtureBlock struct {
	Height         int32             `json:"height"`
	Timestamp      int64             `json:"timestamp"`
	Bits           uint32            `json:"bits"`
	Version        int32             `json:"version"`
	IsProofOfStake bool              `json:"isProofOfStake"`
	Signature      string            `json:"signature"`
	Coinstake      *fixtureCoinstake `json:"coinstake,omitempty"`
}

// fixtureCoinstake describes the previous output a PoS fixture block's
// coinstake spends, resolved through a BlockTreeDB/UtxoView pair built
// from the fixture itself rather than from a real block-file store —
// exactly the §4.4.3 composition blockchain.BlockChain.CheckProofOfStake
// performs against a real host's collaborators.
type fixtureCoinstake struct {
	PrevTxHash        string `json:"prevTxHash"`
	PrevTxIndex       uint32 `json:"prevTxIndex"`
	PrevTxValue       int64  `json:"prevTxValue"`
	PrevTxBlockHeight int32  `json:"prevTxBlockHeight"`
	Offset            uint32 `json:"offset"`
	Timestamp         int64  `json:"timestamp"`
}

// fixture is the on-disk shape of a JSON fixture file.
type fixture struct {
	Network string         `json:"network"`
	Blocks  []fixtureBlock `json:"blocks"`
}

// fixtureNetwork resolves a fixture's network name to the matching
// chaincfg.Params, defaulting to mainnet.
func fixtureNetwork(name string) (*chaincfg.Params, error) {
	switch name {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

// loadFixture reads path and replays every entry through the kernel's
// block-connection path, returning the chain with every block's stake
// modifier, entropy bit and checksum already computed by
// addToBlockIndex, the chain-ordered list of resulting hashes so a
// subcommand can address a block by height, and — for any block whose
// fixture entry carries a coinstake description — the error (nil on
// success) blockchain.BlockChain.CheckProofOfStake returned for it,
// indexed the same way as hashes.
func loadFixture(path string) (*blockchain.BlockChain, []chainhash.Hash, []error, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}

	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, nil, nil, fmt.Errorf("parsing fixture: %w", err)
	}

	params, err := fixtureNetwork(f.Network)
	if err != nil {
		return nil, nil, nil, err
	}

	treeDB := blockchain.NewMemBlockTreeDB()
	utxo := blockchain.NewMemUtxoView()
	chain := blockchain.New(params, treeDB, utxo)

	hashes := make([]chainhash.Hash, 0, len(f.Blocks))
	posResults := make([]error, 0, len(f.Blocks))
	heightHash := make(map[int32]chainhash.Hash, len(f.Blocks))
	var prevHash chainhash.Hash

	for i, fb := range f.Blocks {
		header := &wire.BlockHeader{
			Version:   fb.Version,
			PrevBlock: prevHash,
			Timestamp: time.Unix(fb.Timestamp, 0),
			Bits:      fb.Bits,
		}

		var sig []byte
		if fb.Signature != "" {
			sig, err = hex.DecodeString(fb.Signature)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("block %d: decoding signature: %w", i, err)
			}
		}

		isPoS := fb.IsProofOfStake || fb.Coinstake != nil
		node, err := chain.ConnectHeader(header, fb.Height, isPoS, sig)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("block %d: %w", i, err)
		}

		hash := *node.Hash()
		hashes = append(hashes, hash)
		heightHash[fb.Height] = hash

		var posErr error
		if fb.Coinstake != nil {
			prevHashVal, err := chainhash.NewHashFromStr(fb.Coinstake.PrevTxHash)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("block %d: decoding coinstake prevTxHash: %w", i, err)
			}
			blockFromHash, ok := heightHash[fb.Coinstake.PrevTxBlockHeight]
			if !ok {
				return nil, nil, nil, fmt.Errorf("block %d: coinstake refers to unconnected block at height %d",
					i, fb.Coinstake.PrevTxBlockHeight)
			}

			txOuts := make([]*wire.TxOut, fb.Coinstake.PrevTxIndex+1)
			for j := range txOuts {
				txOuts[j] = &wire.TxOut{}
			}
			txOuts[fb.Coinstake.PrevTxIndex] = &wire.TxOut{Value: fb.Coinstake.PrevTxValue}
			txPrev := &wire.MsgTx{TxOut: txOuts}

			loc := blockchain.TxLocation{BlockHash: blockFromHash, Offset: fb.Coinstake.Offset}
			treeDB.AddTransaction(*prevHashVal, loc, txPrev)

			outpoint := wire.OutPoint{Hash: *prevHashVal, Index: fb.Coinstake.PrevTxIndex}
			utxo.AddCoin(outpoint, &blockchain.Coin{Height: fb.Coinstake.PrevTxBlockHeight, Value: fb.Coinstake.PrevTxValue})

			msgBlock := &wire.MsgBlock{
				Header: *header,
				Transactions: []*wire.MsgTx{
					{},
					{Timestamp: uint32(fb.Coinstake.Timestamp), TxIn: []*wire.TxIn{{PreviousOutPoint: outpoint}}, TxOut: []*wire.TxOut{{}, {Value: 1}}},
				},
			}
			posErr = chain.CheckProofOfStake(node, msgBlock, blockchain.FixedClock(fb.Coinstake.Timestamp))
		}
		posResults = append(posResults, posErr)

		prevHash = hash
	}

	return chain, hashes, posResults, nil
}

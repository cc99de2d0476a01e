// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"

	"github.com/Dracarys07/deeponion/chaincfg"
	"github.com/Dracarys07/deeponion/wire"
)

// CheckBlockSignature verifies the minter's signature over a minted
// block's hash: the genesis block carries no signature, a proof-of-stake
// block is signed by the key paying its coinstake's second output, a
// proof-of-work block by the key paying its coinbase's first output.
// https://github.com/ppcoin/ppcoin/blob/v0.4.0ppc/src/main.cpp#L2116
func CheckBlockSignature(msgBlock *wire.MsgBlock, params *chaincfg.Params) bool {
	hash := msgBlock.BlockHash()
	if hash.IsEqual(params.GenesisHash) {
		return len(msgBlock.Signature) == 0
	}

	var txOut *wire.TxOut
	if msgBlock.IsProofOfStake() {
		if len(msgBlock.Transactions) < 2 || len(msgBlock.Transactions[1].TxOut) < 2 {
			return false
		}
		txOut = msgBlock.Transactions[1].TxOut[1]
	} else {
		if len(msgBlock.Transactions) < 1 || len(msgBlock.Transactions[0].TxOut) < 1 {
			return false
		}
		txOut = msgBlock.Transactions[0].TxOut[0]
	}

	scriptClass, addresses, _, err := txscript.ExtractPkScriptAddrs(txOut.PkScript, params.Net)
	if err != nil || scriptClass != txscript.PubKeyTy || len(addresses) == 0 {
		return false
	}
	pubKeyAddr, ok := addresses[0].(*btcutil.AddressPubKey)
	if !ok {
		return false
	}

	sig, err := ecdsa.ParseSignature(msgBlock.Signature)
	if err != nil {
		return false
	}
	return sig.Verify(hash[:], pubKeyAddr.PubKey())
}

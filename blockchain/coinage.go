// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"

	"github.com/Dracarys07/deeponion/wire"
)

// PrevTxLookup resolves a spent outpoint's owning transaction, the same
// caller-resolved-previous-transaction shape checkTxProofOfStake takes
// its own txPrev parameter in: this package never walks the chain or
// touches storage on its own to answer "what did this input spend".
type PrevTxLookup func(outpoint wire.OutPoint) (txPrev *wire.MsgTx, timestamp int64, ok bool)

// CoinAgeTx totals a single transaction's coin age in coin-days: the sum,
// over every input meeting StakeMinAge, of (value spent) * (effective
// age) expressed in cent-seconds and then rescaled to coin-days. A
// coinbase spends nothing and so carries zero coin age.
//
// When capEffectiveAge is set, an individual input's age is capped at a
// year before it enters the sum — the compatibility clamp later protocol
// revisions of this kernel applied uniformly rather than only above a
// version threshold, since this package carries a single kernel variant.
func CoinAgeTx(tx *wire.MsgTx, timeTx int64, stakeMinAge int64, lookupPrev PrevTxLookup, capEffectiveAge bool) (int64, error) {
	if tx.IsCoinBase() {
		return 0, nil
	}

	centSeconds := big.NewInt(0)

	for _, txIn := range tx.TxIn {
		txPrev, txPrevTime, ok := lookupPrev(txIn.PreviousOutPoint)
		if !ok {
			continue // previous transaction not in main chain
		}
		if timeTx < txPrevTime {
			return 0, fmt.Errorf("CoinAgeTx: transaction timestamp violation")
		}
		if txPrevTime+stakeMinAge > timeTx {
			continue // coin has not met the minimum age requirement
		}

		valueIn := txPrev.TxOut[txIn.PreviousOutPoint.Index].Value
		effectiveAge := timeTx - txPrevTime
		if capEffectiveAge {
			effectiveAge = minInt64(effectiveAge, 365*24*60*60)
		}

		product := new(big.Int).Mul(big.NewInt(valueIn), big.NewInt(effectiveAge))
		centSeconds.Add(centSeconds, new(big.Int).Div(product, big.NewInt(Cent)))
	}

	coinDays := new(big.Int).Div(
		new(big.Int).Mul(centSeconds, big.NewInt(Cent)),
		big.NewInt(CoinUnit*24*60*60))
	return coinDays.Int64(), nil
}

// CoinAgeBlock totals the coin age spent by every transaction in a block,
// floored at one coin-day: a block with literally zero coin age spent
// still counts as having minted with the smallest possible stake.
func CoinAgeBlock(block *wire.MsgBlock, timeBlock int64, stakeMinAge int64, lookupPrev PrevTxLookup, capEffectiveAge bool) (int64, error) {
	var total int64
	for _, tx := range block.Transactions {
		age, err := CoinAgeTx(tx, timeBlock, stakeMinAge, lookupPrev, capEffectiveAge)
		if err != nil {
			return 0, err
		}
		total += age
	}
	if total == 0 {
		total = 1
	}
	return total, nil
}

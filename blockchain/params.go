// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

// Constants that participate in the kernel hash or its surrounding
// arithmetic but are not chain-selectable, so they stay package constants
// rather than fields on chaincfg.Params (which carries StakeMinAge,
// ModifierInterval, CoinbaseMaturity and the checkpoint table instead —
// see chaincfg.Params).
const (
	// ModifierIntervalRatio shapes the 64-section selection-interval
	// curve; MUST NOT change without forking, since it participates in
	// every selection-interval-section computation.
	ModifierIntervalRatio int64 = 3

	// StakeMaxAge is the coin age at which time-weight saturates.
	StakeMaxAge int64 = 60 * 60 * 24 * 30

	// CoinUnit is the smallest-unit-per-coin denominator used by the
	// coin-day weight formula.
	CoinUnit int64 = 100000000

	// Cent is one hundredth of CoinUnit, the unit coin-age accounting works
	// in.
	Cent int64 = CoinUnit / 100

	// MaxClockDrift bounds how far a block's timestamp may lie in the
	// future of a node's adjusted clock before it is rejected outright.
	MaxClockDrift int64 = 2 * 60 * 60

	// StakeTargetSpacing is the target time between blocks; it does not
	// participate in the kernel hash.
	StakeTargetSpacing int64 = 10 * 60
)

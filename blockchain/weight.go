// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

// Weight maps a (coin-creation-time, spend-time) pair to the bounded age
// the coin-day-weight formula uses: zero at STAKE_MIN_AGE rather than at
// creation, to encourage more active coins to participate, and clamped
// at STAKE_MAX_AGE. May be negative if the minimum-age precondition has
// not been separately enforced by the caller.
func Weight(params stakeAger, tBegin, tEnd int64) int64 {
	age := tEnd - tBegin - params.MinAge()
	if age > StakeMaxAge {
		return StakeMaxAge
	}
	return age
}

// stakeAger is the narrow slice of chaincfg.Params the weight function
// needs, kept separate from a concrete *chaincfg.Params parameter so unit
// tests can supply their own minimal ages.
type stakeAger interface {
	MinAge() int64
}

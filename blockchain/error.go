// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a kind of error returned by the functions in this
// package, grouped by the failure-semantics classes of consensus-reject,
// transient, and internal.
type ErrorCode int

const (
	// ErrMissingParent indicates the block holding a coinstake's
	// previous transaction has no entry in the block index.
	// Consensus-fatal: the caller should DoS-ban the peer that supplied
	// the block.
	ErrMissingParent ErrorCode = iota

	// ErrMissingUtxo indicates the previous output a coinstake spends
	// could not be found in the supplied UTXO view. Consensus-fatal.
	ErrMissingUtxo

	// ErrImmatureCoin indicates a coinstake input has not yet reached
	// CoinbaseMaturity confirmations. Consensus-fatal.
	ErrImmatureCoin

	// ErrNotCoinStake indicates check_proof_of_stake was invoked against
	// a transaction that is not a coinstake. Consensus-fatal.
	ErrNotCoinStake

	// ErrTimeViolation indicates a coinstake's spend time precedes the
	// previous output's own recorded time. Consensus-fatal.
	ErrTimeViolation

	// ErrMinAge indicates block_from.time + STAKE_MIN_AGE > time_tx: the
	// spent coin has not aged long enough to stake. Consensus-fatal.
	ErrMinAge

	// ErrKernelHashTooHigh indicates hash_proof exceeded target_proof:
	// the coinstake's kernel did not meet its target. Consensus-fatal.
	ErrKernelHashTooHigh

	// ErrCheckpointMismatch indicates a computed stake-modifier checksum
	// disagreed with a hard-coded checkpoint. Consensus-fatal; indicates
	// divergence from the canonical chain.
	ErrCheckpointMismatch

	// ErrCorruptTxOffset indicates the on-disk previous-transaction
	// lookup or deserialization failed. Consensus-fatal (corrupt chain
	// data).
	ErrCorruptTxOffset

	// ErrDuplicateStake indicates a coinstake's kernel input was already
	// claimed by another block at the same spend time, with no orphan
	// child excusing the repeat. Consensus-fatal: bounds block-flood
	// attacks built on cheaply re-signing the same stake.
	ErrDuplicateStake

	// ErrBadBlockSignature indicates the minter's signature over the
	// block hash failed to verify against the key recovered from the
	// relevant coinbase/coinstake output. Consensus-fatal.
	ErrBadBlockSignature
)

var errorCodeStrings = map[ErrorCode]string{
	ErrMissingParent:      "ErrMissingParent",
	ErrMissingUtxo:        "ErrMissingUtxo",
	ErrImmatureCoin:       "ErrImmatureCoin",
	ErrNotCoinStake:       "ErrNotCoinStake",
	ErrTimeViolation:      "ErrTimeViolation",
	ErrMinAge:             "ErrMinAge",
	ErrKernelHashTooHigh:  "ErrKernelHashTooHigh",
	ErrCheckpointMismatch: "ErrCheckpointMismatch",
	ErrCorruptTxOffset:    "ErrCorruptTxOffset",
	ErrDuplicateStake:     "ErrDuplicateStake",
	ErrBadBlockSignature:  "ErrBadBlockSignature",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(e))
}

// RuleError identifies a consensus-rule violation. It is the
// ConsensusReject kind of the three failure-semantics classes: the caller
// is expected to surface it and ban the peer that supplied the offending
// block.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// IsTransient reports whether err represents the Transient failure
// class: a "modifier not yet available" result because the local chain
// is behind, not a consensus violation. Callers should retry rather than
// reject the block or ban a peer.
func IsTransient(err error) bool {
	_, ok := err.(transientError)
	return ok
}

// transientError is the Transient kind: retryable, never surfaced as a
// consensus rule violation.
type transientError string

func (e transientError) Error() string { return string(e) }

func transientf(format string, args ...interface{}) error {
	return transientError(fmt.Sprintf(format, args...))
}

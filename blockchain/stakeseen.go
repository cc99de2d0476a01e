// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"sync"

	"github.com/Dracarys07/deeponion/wire"
)

// Stake identifies a coinstake's kernel input by the previous output it
// spends and the time it spent it at, the key the duplicate-stake check
// dedupes on: the same output can stake more than once over its lifetime,
// but never twice at the same spend time.
type Stake struct {
	PrevOut wire.OutPoint
	Time    int64
}

// StakeSeenTracker records which Stake keys have already been claimed by
// a connected or orphan block, enforcing the "limited duplicity on stake"
// rule that bounds block-flood attacks: a coin may only stake once per
// spend time on the main chain, with a narrow orphan-child exception. It
// replaces the pair of process-wide mutable maps the design notes call
// out (§9) with an explicit, independently constructible type so a test
// or a second chain instance never shares state with another.
type StakeSeenTracker struct {
	mu     sync.Mutex
	seen   map[Stake]bool
	orphan map[Stake]bool
}

// NewStakeSeenTracker returns an empty StakeSeenTracker.
func NewStakeSeenTracker() *StakeSeenTracker {
	return &StakeSeenTracker{
		seen:   make(map[Stake]bool),
		orphan: make(map[Stake]bool),
	}
}

// Seen reports whether stake has already been claimed on the main chain.
func (t *StakeSeenTracker) Seen(stake Stake) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seen[stake]
}

// MarkSeen records stake as claimed on the main chain.
func (t *StakeSeenTracker) MarkSeen(stake Stake) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[stake] = true
}

// SeenOrphan reports whether stake has already been claimed by a pending
// orphan block.
func (t *StakeSeenTracker) SeenOrphan(stake Stake) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orphan[stake]
}

// MarkSeenOrphan records stake as claimed by a pending orphan block.
func (t *StakeSeenTracker) MarkSeenOrphan(stake Stake) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.orphan[stake] = true
}

// ForgetOrphan clears stake's orphan claim, called once the orphan is
// connected or discarded.
func (t *StakeSeenTracker) ForgetOrphan(stake Stake) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.orphan, stake)
}

// CheckDuplicateStake implements the duplicate-stake gate: a block's
// coinstake is rejected only if its Stake key was already claimed and the
// claiming block has no orphan child waiting on it — the one case the
// historical rule carves out to let a staker legitimately rebroadcast a
// block that only an orphan descendant has seen so far.
func (t *StakeSeenTracker) CheckDuplicateStake(stake Stake, hasOrphanChild bool) error {
	if t.Seen(stake) && !hasOrphanChild {
		return ruleError(ErrDuplicateStake, "duplicate proof-of-stake claim")
	}
	return nil
}

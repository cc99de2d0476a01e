// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/Dracarys07/deeponion/wire"
)

func TestStakeSeenTrackerDuplicateRejected(t *testing.T) {
	tracker := NewStakeSeenTracker()
	stake := Stake{PrevOut: wire.OutPoint{Index: 1}, Time: 1000}

	if tracker.Seen(stake) {
		t.Fatalf("fresh tracker already reports stake as seen")
	}

	if err := tracker.CheckDuplicateStake(stake, false); err != nil {
		t.Fatalf("first claim of a stake rejected: %v", err)
	}
	tracker.MarkSeen(stake)

	if err := tracker.CheckDuplicateStake(stake, false); err == nil {
		t.Fatalf("duplicate stake with no orphan child was not rejected")
	}

	if err := tracker.CheckDuplicateStake(stake, true); err != nil {
		t.Fatalf("duplicate stake with an orphan child was rejected: %v", err)
	}
}

func TestStakeSeenTrackerOrphanLifecycle(t *testing.T) {
	tracker := NewStakeSeenTracker()
	stake := Stake{PrevOut: wire.OutPoint{Index: 7}, Time: 50}

	if tracker.SeenOrphan(stake) {
		t.Fatalf("fresh tracker already reports orphan stake as seen")
	}
	tracker.MarkSeenOrphan(stake)
	if !tracker.SeenOrphan(stake) {
		t.Fatalf("MarkSeenOrphan did not register stake")
	}
	tracker.ForgetOrphan(stake)
	if tracker.SeenOrphan(stake) {
		t.Fatalf("ForgetOrphan did not clear stake")
	}
}

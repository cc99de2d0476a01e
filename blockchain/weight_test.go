// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "testing"

type fixedAger int64

func (a fixedAger) MinAge() int64 { return int64(a) }

func TestWeight(t *testing.T) {
	tests := []struct {
		name   string
		minAge int64
		tBegin int64
		tEnd   int64
		want   int64
	}{
		{"below max age", 1000, 0, 2000, 2000 - 1000},
		{"saturates at max age", 0, 0, StakeMaxAge + 100, StakeMaxAge},
		{"exactly at max age", 0, 0, StakeMaxAge, StakeMaxAge},
		{"negative when spent before min age elapsed", 1000, 0, 500, 500 - 1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Weight(fixedAger(tc.minAge), tc.tBegin, tc.tEnd)
			if got != tc.want {
				t.Errorf("Weight() = %d, want %d", got, tc.want)
			}
		})
	}
}

// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg carries the chain-specific constants the PoS kernel
// needs but that never participate in the consensus hash itself: the
// minimum coin age, the modifier cadence, coinbase maturity and the
// stake-modifier checkpoint table. Everything here is a plain value
// threaded into the kernel by the caller rather than a process-wide
// mutable, per the design note in the upstream fork this package
// replaces (peercoin-btcd kept these as package globals for
// testability; we thread a *Params instead).
package chaincfg

import (
	btcdchaincfg "github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Params holds the network parameters the PoS kernel consults.
type Params struct {
	Name string

	// Net carries the address-encoding and network-identity parameters
	// real btcsuite packages (txscript, btcutil) expect, so a signature
	// or address check can be handed params.Net directly instead of
	// this package re-deriving magic/version bytes of its own.
	Net *btcdchaincfg.Params

	// GenesisHash is the hash of the network's genesis block.
	GenesisHash *chainhash.Hash

	// PowLimit is the highest proof-of-work target (lowest difficulty).
	PowLimit *chainhash.Hash
	// PowLimitBits is PowLimit in compact form.
	PowLimitBits uint32

	// InitialHashTargetBits is the compact target of the first PoW block.
	InitialHashTargetBits uint32

	// StakeMinAge is the minimum coin age, in seconds, before an output
	// may stake. Corresponds to STAKE_MIN_AGE.
	StakeMinAge int64

	// ModifierInterval is the cadence, in seconds, at which a fresh
	// stake modifier is generated. Corresponds to MODIFIER_INTERVAL.
	ModifierInterval int64

	// CoinbaseMaturity is the number of confirmations a coinstake input
	// must have before it can be spent.
	CoinbaseMaturity int32

	// StakeModifierCheckpoints hard-asserts the stake modifier checksum
	// at specific heights. A height absent from the map is unconstrained.
	StakeModifierCheckpoints map[int32]uint32
}

// MinAge returns StakeMinAge, satisfying the narrow stakeAger interface
// the kernel's time-weight function depends on.
func (p *Params) MinAge() int64 {
	return p.StakeMinAge
}

// mainNetGenesisHash is a placeholder genesis hash; a concrete deployment
// supplies its own. Kept non-nil so Params is directly usable in tests
// that don't care about genesis identity.
var mainNetGenesisHash = chainhash.Hash{}

// mainNetPowLimit mirrors the Bitcoin-lineage default of 2^224-1.
var mainNetPowLimit = func() *chainhash.Hash {
	var h chainhash.Hash
	for i := range h {
		if i >= chainhash.HashSize-4 {
			continue
		}
		h[i] = 0xff
	}
	return &h
}()

// MainNetParams are the mainnet consensus parameters, carrying the
// checkpoint table of spec §6 byte-for-byte.
var MainNetParams = Params{
	Name:                  "mainnet",
	Net:                   &btcdchaincfg.MainNetParams,
	GenesisHash:           &mainNetGenesisHash,
	PowLimit:              mainNetPowLimit,
	PowLimitBits:          0x1d00ffff,
	InitialHashTargetBits: 0x1c00ffff,
	StakeMinAge:           86400,
	ModifierInterval:      480,
	CoinbaseMaturity:      500,
	StakeModifierCheckpoints: map[int32]uint32{
		0:      0xfd11f4e7,
		1000:   0x353653fe,
		10000:  0x8c341084,
		50008:  0x9f0053f2,
		100000: 0xaf212909,
		150006: 0x3883af95,
		200830: 0xf2daec0a,
		250008: 0x76bd1777,
		300836: 0x18dbac5e,
		350003: 0x17223fa8,
		400002: 0xd1662b8f,
		450000: 0x0fc0c8d3,
		500001: 0x17ac1811,
		550004: 0xcfb3340f,
		600014: 0x74d7cf8c,
		621306: 0x4890a081,
	},
}

// TestNetParams are the testnet consensus parameters.
var TestNetParams = Params{
	Name:                  "testnet3",
	Net:                   &btcdchaincfg.TestNet3Params,
	GenesisHash:           &mainNetGenesisHash,
	PowLimit:              mainNetPowLimit,
	PowLimitBits:          0x1d00ffff,
	InitialHashTargetBits: 0x1c00ffff,
	StakeMinAge:           86400,
	ModifierInterval:      480,
	CoinbaseMaturity:      10,
	StakeModifierCheckpoints: map[int32]uint32{
		0: 0xfd11f4e7,
	},
}

// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/Dracarys07/deeponion/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// getStakeEntropyBit derives a block's single stake-entropy bit as the low
// bit of its block hash's big-endian magnitude, the compatible derivation
// named in §4.3.4. The signature parameter is unused by this derivation
// but kept so callers retain the block's minting signature at the call
// site without an extra lookup, matching how addToBlockIndex invokes it.
func getStakeEntropyBit(params *chaincfg.Params, hash *chainhash.Hash, signature []byte) (uint32, error) {
	bit := uint32(HashToBig(hash).Bit(0))
	log.Tracef("Entropy bit = %d for block %v", bit, hash)
	return bit, nil
}

func getStakeModifierHexString(stakeModifier uint64) string {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, stakeModifier)
	return hex.EncodeToString(buf)
}

func getStakeModifierCSHexString(checksum uint32) string {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, checksum)
	return hex.EncodeToString(buf)
}

// bigToShaHash converts a big-endian magnitude into a chainhash.Hash,
// zero-padding on the left (high end) to the fixed hash width.
func bigToShaHash(value *big.Int) (*chainhash.Hash, error) {
	buf := value.Bytes()
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}
	padded := buf
	if chainhash.HashSize-blen > 0 {
		padded = make([]byte, chainhash.HashSize)
		copy(padded, buf)
	}
	return chainhash.NewHash(padded)
}

// dateTimeStrFormat displays a unix time in RFC3339 for log lines.
func dateTimeStrFormat(t int64) string {
	return time.Unix(t, 0).UTC().Format(time.RFC3339)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}


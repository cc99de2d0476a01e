// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainutil

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/Dracarys07/deeponion/wire"
)

// Amount represents a quantity of the chain's base unit as an integer
// number of the smallest subdivision, exactly as btcutil.Amount does for
// satoshis. The arithmetic/formatting methods come from the wrapped type;
// NewAmount below delegates to btcutil.NewAmount.
type Amount = btcutil.Amount

// NewAmount creates an Amount from a floating-point value representing
// units of the chain's base coin, rounding to the nearest smallest
// subdivision the way btcutil.NewAmount does for BTC/satoshi.
func NewAmount(f float64) (Amount, error) {
	return btcutil.NewAmount(f)
}

// MetaToBytes serializes block meta to its on-disk byte representation.
func MetaToBytes(meta *wire.Meta) ([]byte, error) {
	var buf bytes.Buffer
	if err := meta.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MetaFromBytes deserializes block meta from its on-disk byte
// representation.
func MetaFromBytes(serialized []byte) (*wire.Meta, error) {
	meta := new(wire.Meta)
	if err := meta.Deserialize(bytes.NewReader(serialized)); err != nil {
		return nil, err
	}
	return meta, nil
}

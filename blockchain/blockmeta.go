// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/database"

	"github.com/Dracarys07/deeponion/wire"
)

// blockMetaBucketName is the metadata bucket a host's database.DB keeps
// every block's serialized Meta record under, keyed by hash.
var blockMetaBucketName = []byte("blockmetaidx")

var blockMetaSuffix = []byte{'b', 'm'}

// hashMetaToKey derives a meta record's storage key from its block hash.
func hashMetaToKey(hash *chainhash.Hash) []byte {
	key := make([]byte, len(hash)+len(blockMetaSuffix))
	copy(key, hash[:])
	copy(key[len(hash):], blockMetaSuffix)
	return key
}

// CreateMetaBucket creates the block-meta bucket, called once against a
// freshly initialized database before any block's meta is stored.
func CreateMetaBucket(dbTx database.Tx) error {
	_, err := dbTx.Metadata().CreateBucket(blockMetaBucketName)
	return err
}

// FetchBlockMeta reads and deserializes the Meta record stored for hash.
func FetchBlockMeta(dbTx database.Tx, hash chainhash.Hash) (*wire.Meta, error) {
	bucket := dbTx.Metadata().Bucket(blockMetaBucketName)
	raw := bucket.Get(hashMetaToKey(&hash))
	if raw == nil {
		return nil, database.Error{
			ErrorCode:   database.ErrCorruption,
			Description: fmt.Sprintf("failed to find meta for %v", hash),
		}
	}
	meta := new(wire.Meta)
	if err := meta.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return meta, nil
}

// StoreBlockMeta serializes and writes meta under hash, overwriting any
// record already stored for that hash.
func StoreBlockMeta(dbTx database.Tx, hash *chainhash.Hash, meta *wire.Meta) error {
	var buf bytes.Buffer
	if err := meta.Serialize(&buf); err != nil {
		return err
	}
	bucket := dbTx.Metadata().Bucket(blockMetaBucketName)
	return bucket.Put(hashMetaToKey(hash), buf.Bytes())
}

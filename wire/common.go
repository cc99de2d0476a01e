// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// writeElement writes the little endian representation of element to w.
// It mirrors btcd's wire/common.go helper of the same name, extended with
// the chainhash.Hash fast path the PoS fork needs.
func writeElement(w io.Writer, element interface{}) error {
	var scratch [8]byte

	switch e := element.(type) {
	case int32:
		binary.LittleEndian.PutUint32(scratch[0:4], uint32(e))
		_, err := w.Write(scratch[0:4])
		return err

	case uint32:
		binary.LittleEndian.PutUint32(scratch[0:4], e)
		_, err := w.Write(scratch[0:4])
		return err

	case int64:
		binary.LittleEndian.PutUint64(scratch[0:8], uint64(e))
		_, err := w.Write(scratch[0:8])
		return err

	case uint64:
		binary.LittleEndian.PutUint64(scratch[0:8], e)
		_, err := w.Write(scratch[0:8])
		return err

	case bool:
		b := byte(0x00)
		if e {
			b = 0x01
		}
		_, err := w.Write([]byte{b})
		return err

	case chainhash.Hash:
		_, err := w.Write(e[:])
		return err

	case *chainhash.Hash:
		_, err := w.Write(e[:])
		return err
	}

	return binary.Write(w, binary.LittleEndian, element)
}

// readElement reads the little endian representation of element from r.
func readElement(r io.Reader, element interface{}) error {
	var scratch [8]byte

	switch e := element.(type) {
	case *int32:
		if _, err := io.ReadFull(r, scratch[0:4]); err != nil {
			return err
		}
		*e = int32(binary.LittleEndian.Uint32(scratch[0:4]))
		return nil

	case *uint32:
		if _, err := io.ReadFull(r, scratch[0:4]); err != nil {
			return err
		}
		*e = binary.LittleEndian.Uint32(scratch[0:4])
		return nil

	case *int64:
		if _, err := io.ReadFull(r, scratch[0:8]); err != nil {
			return err
		}
		*e = int64(binary.LittleEndian.Uint64(scratch[0:8]))
		return nil

	case *uint64:
		if _, err := io.ReadFull(r, scratch[0:8]); err != nil {
			return err
		}
		*e = binary.LittleEndian.Uint64(scratch[0:8])
		return nil

	case *bool:
		if _, err := io.ReadFull(r, scratch[0:1]); err != nil {
			return err
		}
		*e = scratch[0] != 0x00
		return nil

	case *chainhash.Hash:
		_, err := io.ReadFull(r, e[:])
		return err
	}

	return binary.Read(r, binary.LittleEndian, element)
}

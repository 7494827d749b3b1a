// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tinybank/tinybank/kv"
	"github.com/tinybank/tinybank/thor"
	"github.com/tinybank/tinybank/tx"
)

const (
	receiptBucket = kv.Bucket("r")
	propsBucket   = kv.Bucket("p")
)

var (
	bestBlockKey = []byte("best-block")
	genesisIDKey = []byte("genesis-id")
)

func numberKey(n uint32) []byte {
	var k [4]byte
	binary.BigEndian.PutUint32(k[:], n)
	return k[:]
}

func saveRLP(w kv.Putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func saveReceipt(w kv.Putter, receipt *tx.Receipt) error {
	return saveRLP(receiptBucket.NewPutter(w), numberKey(receipt.BlockNumber), receipt)
}

func loadReceipt(r kv.Getter, number uint32) (*tx.Receipt, error) {
	var receipt tx.Receipt
	if err := loadRLP(receiptBucket.NewGetter(r), numberKey(number), &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func saveBestNumber(w kv.Putter, n uint32) error {
	return propsBucket.NewPutter(w).Put(bestBlockKey, numberKey(n))
}

// loadBestNumber returns the best block number, ok is false for an empty database.
func loadBestNumber(r kv.Getter) (n uint32, ok bool, err error) {
	data, err := propsBucket.NewGetter(r).Get(bestBlockKey)
	if err != nil {
		if r.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return binary.BigEndian.Uint32(data), true, nil
}

func saveGenesisID(w kv.Putter, id thor.Bytes32) error {
	return propsBucket.NewPutter(w).Put(genesisIDKey, id.Bytes())
}

func loadGenesisID(r kv.Getter) (thor.Bytes32, error) {
	data, err := propsBucket.NewGetter(r).Get(genesisIDKey)
	if err != nil {
		return thor.Bytes32{}, err
	}
	return thor.BytesToBytes32(data), nil
}

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tinybank/tinybank/thor"
)

// Receipt represents the results of an operation executed in a block.
type Receipt struct {
	// number of the block the operation was executed in
	BlockNumber uint32
	// caller of the operation
	Origin thor.Address
	// name of the operation, e.g. "bank.stake"
	Op string
	// whether the operation was reverted
	Reverted bool
	// revert reason, empty if not reverted
	Reason string
	// revert kind, zero if not reverted
	RevertKind uint8
	// logs produced, empty if reverted
	Events Events
}

// Encode encodes the receipt into rlp bytes.
func (r *Receipt) Encode() ([]byte, error) {
	return rlp.EncodeToBytes(r)
}

// DecodeReceipt decodes rlp bytes into a receipt.
func DecodeReceipt(data []byte) (*Receipt, error) {
	var r Receipt
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

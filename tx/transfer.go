// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"errors"
	"math/big"

	"github.com/tinybank/tinybank/thor"
)

// Transfer token transfer log.
type Transfer struct {
	Sender    thor.Address
	Recipient thor.Address
	Amount    *big.Int
}

// Transfers slice of transfer logs.
type Transfers []*Transfer

// DecodeTransfer extracts the transfer carried by a Transfer event.
func DecodeTransfer(ev *Event) (*Transfer, error) {
	if len(ev.Topics) != 3 || ev.Topics[0] != TransferEventSig {
		return nil, errors.New("not a transfer event")
	}
	return &Transfer{
		Sender:    thor.BytesToAddress(ev.Topics[1].Bytes()),
		Recipient: thor.BytesToAddress(ev.Topics[2].Bytes()),
		Amount:    new(big.Int).SetBytes(ev.Data),
	}, nil
}

// Transfers decodes every Transfer event in the slice.
func (es Events) Transfers() Transfers {
	var out Transfers
	for _, ev := range es.Filter(TransferEventSig) {
		if tr, err := DecodeTransfer(ev); err == nil {
			out = append(out, tr)
		}
	}
	return out
}

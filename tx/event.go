// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/tinybank/tinybank/thor"
)

// Event represents a contract event log, in the shape of an EVM log.
type Event struct {
	// address of the contract that emitted the event
	Address thor.Address
	// list of topics provided by the contract.
	Topics []thor.Bytes32
	// supplied by the contract, usually ABI-encoded
	Data []byte
}

// Events slice of event logs.
type Events []*Event

// Filter returns the events whose first topic is the given signature.
func (es Events) Filter(sig thor.Bytes32) Events {
	var out Events
	for _, e := range es {
		if len(e.Topics) > 0 && e.Topics[0] == sig {
			out = append(out, e)
		}
	}
	return out
}

// Event signatures of the token ledger.
var (
	TransferEventSig = thor.Keccak256([]byte("Transfer(address,address,uint256)"))
	ApprovalEventSig = thor.Keccak256([]byte("Approval(address,address,uint256)"))
)

func addressTopic(addr thor.Address) thor.Bytes32 {
	return thor.BytesToBytes32(addr.Bytes())
}

func amountData(amount *big.Int) []byte {
	return thor.BytesToBytes32(amount.Bytes()).Bytes()
}

// NewTransferEvent builds a Transfer(from, to, amount) log emitted by contract.
func NewTransferEvent(contract, from, to thor.Address, amount *big.Int) *Event {
	return &Event{
		Address: contract,
		Topics:  []thor.Bytes32{TransferEventSig, addressTopic(from), addressTopic(to)},
		Data:    amountData(amount),
	}
}

// NewApprovalEvent builds an Approval(owner, spender, amount) log emitted by contract.
func NewApprovalEvent(contract, owner, spender thor.Address, amount *big.Int) *Event {
	return &Event{
		Address: contract,
		Topics:  []thor.Bytes32{ApprovalEventSig, addressTopic(owner), addressTopic(spender)},
		Data:    amountData(amount),
	}
}

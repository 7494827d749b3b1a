// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tinybank/tinybank/api/utils"
	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/thor"
	"github.com/tinybank/tinybank/tx"
)

// Block is the JSON form of a block and the receipt of its only operation.
type Block struct {
	Number     uint32       `json:"number"`
	Origin     thor.Address `json:"origin"`
	Op         string       `json:"op"`
	Reverted   bool         `json:"reverted"`
	Reason     string       `json:"reason,omitempty"`
	RevertData string       `json:"revertData,omitempty"`
	Events     []*Event     `json:"events"`
	Transfers  []*Transfer  `json:"transfers"`
}

// Event is the JSON form of an event log.
type Event struct {
	Address thor.Address   `json:"address"`
	Topics  []thor.Bytes32 `json:"topics"`
	Data    string         `json:"data"`
}

// Transfer is the JSON form of a decoded token transfer.
type Transfer struct {
	Sender    thor.Address `json:"sender"`
	Recipient thor.Address `json:"recipient"`
	Amount    string       `json:"amount"`
}

// ConvertReceipt converts a receipt into its JSON form.
func ConvertReceipt(r *tx.Receipt) *Block {
	blk := &Block{
		Number:    r.BlockNumber,
		Origin:    r.Origin,
		Op:        r.Op,
		Reverted:  r.Reverted,
		Reason:    r.Reason,
		Events:    make([]*Event, 0, len(r.Events)),
		Transfers: make([]*Transfer, 0),
	}
	if r.Reverted {
		blk.RevertData = hexutil.Encode(reverts.New(reverts.Kind(r.RevertKind), r.Reason).Bytes())
	}
	for _, ev := range r.Events {
		blk.Events = append(blk.Events, &Event{
			Address: ev.Address,
			Topics:  ev.Topics,
			Data:    hexutil.Encode(ev.Data),
		})
	}
	for _, tr := range r.Events.Transfers() {
		blk.Transfers = append(blk.Transfers, &Transfer{
			Sender:    tr.Sender,
			Recipient: tr.Recipient,
			Amount:    utils.Decimal(tr.Amount),
		})
	}
	return blk
}

// WriteReceipt responds with the receipt of an executed operation. A reverted
// operation is responded with its receipt and an error status.
func WriteReceipt(w http.ResponseWriter, receipt *tx.Receipt, err error) error {
	if err != nil {
		if receipt != nil && reverts.IsRevertErr(err) {
			return utils.Reverted(err, ConvertReceipt(receipt))
		}
		return err
	}
	return utils.WriteJSON(w, ConvertReceipt(receipt))
}

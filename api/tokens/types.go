// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/tinybank/tinybank/thor"
)

// Info describes the token.
type Info struct {
	Address     thor.Address `json:"address"`
	Name        string       `json:"name"`
	Symbol      string       `json:"symbol"`
	Decimals    uint8        `json:"decimals"`
	TotalSupply string       `json:"totalSupply"`
	Owner       thor.Address `json:"owner"`
	Minter      thor.Address `json:"minter"`
}

// Balance is the token balance of an account.
type Balance struct {
	Address thor.Address `json:"address"`
	Balance string       `json:"balance"`
}

// Allowance is the amount a spender may move on behalf of an owner.
type Allowance struct {
	Owner     thor.Address `json:"owner"`
	Spender   thor.Address `json:"spender"`
	Allowance string       `json:"allowance"`
}

// TransferRequest moves tokens from the caller to To.
type TransferRequest struct {
	Caller thor.Address          `json:"caller"`
	To     thor.Address          `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// ApproveRequest lets Spender move up to Amount of the caller's tokens.
type ApproveRequest struct {
	Caller  thor.Address          `json:"caller"`
	Spender thor.Address          `json:"spender"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

// TransferFromRequest moves tokens from From to To using the caller's allowance.
type TransferFromRequest struct {
	Caller thor.Address          `json:"caller"`
	From   thor.Address          `json:"from"`
	To     thor.Address          `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

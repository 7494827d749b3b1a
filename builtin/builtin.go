// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/tinybank/tinybank/builtin/bank"
	"github.com/tinybank/tinybank/builtin/params"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/builtin/token"
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
)

// Builtin contracts binding.
var (
	Params = &paramsContract{newContract("Params", thor.ParamsContractAddress)}
	Token  = &tokenContract{newContract("MyToken", thor.TokenContractAddress)}
	Bank   = &bankContract{newContract("TinyBank", thor.BankContractAddress)}
)

type (
	paramsContract struct{ *contract }
	tokenContract  struct{ *contract }
	bankContract   struct{ *contract }
)

func (p *paramsContract) Native(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

func (t *tokenContract) Native(state *state.State, events *solidity.Log) *token.Token {
	return token.New(t.Address, state, events)
}

// Native binds the bank to the builtin token and params sharing the same state and event log.
func (b *bankContract) Native(state *state.State, events *solidity.Log, steps bank.Steps) *bank.Bank {
	return bank.New(
		b.Address,
		state,
		events,
		Token.Native(state, events),
		Params.Native(state),
		steps,
	)
}

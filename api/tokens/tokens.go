// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/tinybank/tinybank/api/blocks"
	"github.com/tinybank/tinybank/api/utils"
	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/thor"
)

type Tokens struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Tokens {
	return &Tokens{chain}
}

func (t *Tokens) handleGetInfo(w http.ResponseWriter, _ *http.Request) error {
	var info Info
	err := t.chain.View(func(env *chain.Env) (err error) {
		tk := env.Token()
		info.Address = tk.Address()
		if info.Name, err = tk.Name(); err != nil {
			return err
		}
		if info.Symbol, err = tk.Symbol(); err != nil {
			return err
		}
		if info.Decimals, err = tk.Decimals(); err != nil {
			return err
		}
		supply, err := tk.TotalSupply()
		if err != nil {
			return err
		}
		info.TotalSupply = utils.Decimal(supply)
		if info.Owner, err = tk.Owner(); err != nil {
			return err
		}
		info.Minter, err = tk.Minter()
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &info)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	res := &Balance{Address: addr}
	err = t.chain.View(func(env *chain.Env) error {
		bal, err := env.Token().BalanceOf(addr)
		if err != nil {
			return err
		}
		res.Balance = utils.Decimal(bal)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	owner, err := thor.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "owner"))
	}
	spender, err := thor.ParseAddress(mux.Vars(req)["spender"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "spender"))
	}
	res := &Allowance{Owner: owner, Spender: spender}
	err = t.chain.View(func(env *chain.Env) error {
		allowance, err := env.Token().Allowance(owner, spender)
		if err != nil {
			return err
		}
		res.Allowance = utils.Decimal(allowance)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (t *Tokens) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	receipt, err := t.chain.Execute(body.Caller, "token.transfer", func(env *chain.Env) error {
		return env.Token().Transfer(body.Caller, utils.Amount(body.Amount), body.To)
	})
	return blocks.WriteReceipt(w, receipt, err)
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	receipt, err := t.chain.Execute(body.Caller, "token.approve", func(env *chain.Env) error {
		return env.Token().Approve(body.Caller, body.Spender, utils.Amount(body.Amount))
	})
	return blocks.WriteReceipt(w, receipt, err)
}

func (t *Tokens) handleTransferFrom(w http.ResponseWriter, req *http.Request) error {
	var body TransferFromRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	receipt, err := t.chain.Execute(body.Caller, "token.transferFrom", func(env *chain.Env) error {
		return env.Token().TransferFrom(body.Caller, body.From, body.To, utils.Amount(body.Amount))
	})
	return blocks.WriteReceipt(w, receipt, err)
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/info").
		Methods(http.MethodGet).
		Name("tokens_get_info").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetInfo))
	sub.Path("/balance/{address}").
		Methods(http.MethodGet).
		Name("tokens_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/allowance/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("tokens_get_allowance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/transfer").
		Methods(http.MethodPost).
		Name("tokens_transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer))
	sub.Path("/approve").
		Methods(http.MethodPost).
		Name("tokens_approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
	sub.Path("/transfer-from").
		Methods(http.MethodPost).
		Name("tokens_transfer_from").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransferFrom))
}

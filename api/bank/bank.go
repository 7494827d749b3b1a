// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/tinybank/tinybank/api/blocks"
	"github.com/tinybank/tinybank/api/utils"
	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/thor"
)

type Bank struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Bank {
	return &Bank{chain}
}

func (b *Bank) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	var res Summary
	err := b.chain.View(func(env *chain.Env) error {
		bank := env.Bank()
		total, err := bank.TotalStaked()
		if err != nil {
			return err
		}
		rate, err := bank.RewardPerBlock()
		if err != nil {
			return err
		}
		res = Summary{
			Address:        bank.Address(),
			TotalStaked:    utils.Decimal(total),
			RewardPerBlock: utils.Decimal(rate),
			BestBlock:      b.chain.Number(),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &res)
}

func (b *Bank) handleGetTotalStaked(w http.ResponseWriter, _ *http.Request) error {
	var total string
	err := b.chain.View(func(env *chain.Env) error {
		v, err := env.Bank().TotalStaked()
		total = utils.Decimal(v)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"totalStaked": total})
}

func (b *Bank) handleGetRewardPerBlock(w http.ResponseWriter, _ *http.Request) error {
	var rate string
	err := b.chain.View(func(env *chain.Env) error {
		v, err := env.Bank().RewardPerBlock()
		rate = utils.Decimal(v)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"rewardPerBlock": rate})
}

func (b *Bank) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	res := &Stake{Address: addr}
	err = b.chain.View(func(env *chain.Env) error {
		bank := env.Bank()
		staked, err := bank.Staked(addr)
		if err != nil {
			return err
		}
		accrued, err := bank.PendingReward(addr)
		if err != nil {
			return err
		}
		// a withdraw submitted now executes in the next block
		next, err := bank.RewardAt(addr, b.chain.Number()+1)
		if err != nil {
			return err
		}
		res.Staked = utils.Decimal(staked)
		res.AccruedReward = utils.Decimal(accrued)
		res.WithdrawReward = utils.Decimal(next)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (b *Bank) handleGetManagers(w http.ResponseWriter, _ *http.Request) error {
	res := &Managers{Managers: make([]*Manager, 0)}
	err := b.chain.View(func(env *chain.Env) error {
		bank := env.Bank()
		addrs, err := bank.Managers()
		if err != nil {
			return err
		}
		for _, addr := range addrs {
			confirmed, err := bank.Confirmed(addr)
			if err != nil {
				return err
			}
			res.Managers = append(res.Managers, &Manager{Address: addr, Confirmed: confirmed})
		}
		if res.Confirmed, err = bank.ConfirmationCount(); err != nil {
			return err
		}
		state, err := bank.GateState()
		if err != nil {
			return err
		}
		res.State = state.String()
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (b *Bank) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	receipt, err := b.chain.Execute(body.Caller, "bank.stake", func(env *chain.Env) error {
		return env.Bank().Stake(body.Caller, utils.Amount(body.Amount))
	})
	return blocks.WriteReceipt(w, receipt, err)
}

func (b *Bank) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	receipt, err := b.chain.Execute(body.Caller, "bank.withdraw", func(env *chain.Env) error {
		return env.Bank().Withdraw(body.Caller, utils.Amount(body.Amount))
	})
	return blocks.WriteReceipt(w, receipt, err)
}

func (b *Bank) handleConfirm(w http.ResponseWriter, req *http.Request) error {
	var body ConfirmRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := b.chain.Execute(body.Caller, "bank.confirm", func(env *chain.Env) error {
		return env.Bank().Confirm(body.Caller)
	})
	return blocks.WriteReceipt(w, receipt, err)
}

func (b *Bank) handleSetRewardPerBlock(w http.ResponseWriter, req *http.Request) error {
	var body RewardRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.RewardPerBlock == nil {
		return utils.BadRequest(errors.New("rewardPerBlock: required"))
	}
	receipt, err := b.chain.Execute(body.Caller, "bank.setRewardPerBlock", func(env *chain.Env) error {
		return env.Bank().SetRewardPerBlock(body.Caller, utils.Amount(body.RewardPerBlock))
	})
	return blocks.WriteReceipt(w, receipt, err)
}

func (b *Bank) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/summary").
		Methods(http.MethodGet).
		Name("bank_get_summary").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetSummary))
	sub.Path("/total-staked").
		Methods(http.MethodGet).
		Name("bank_get_total_staked").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetTotalStaked))
	sub.Path("/reward-per-block").
		Methods(http.MethodGet).
		Name("bank_get_reward_per_block").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetRewardPerBlock))
	sub.Path("/reward-per-block").
		Methods(http.MethodPost).
		Name("bank_set_reward_per_block").
		HandlerFunc(utils.WrapHandlerFunc(b.handleSetRewardPerBlock))
	sub.Path("/managers").
		Methods(http.MethodGet).
		Name("bank_get_managers").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetManagers))
	sub.Path("/stakes/{address}").
		Methods(http.MethodGet).
		Name("bank_get_stake").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetStake))
	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("bank_stake").
		HandlerFunc(utils.WrapHandlerFunc(b.handleStake))
	sub.Path("/withdraw").
		Methods(http.MethodPost).
		Name("bank_withdraw").
		HandlerFunc(utils.WrapHandlerFunc(b.handleWithdraw))
	sub.Path("/confirm").
		Methods(http.MethodPost).
		Name("bank_confirm").
		HandlerFunc(utils.WrapHandlerFunc(b.handleConfirm))
}

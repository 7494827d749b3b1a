// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"math/big"

	"github.com/tinybank/tinybank/builtin/bank/managers"
	"github.com/tinybank/tinybank/builtin/bank/reward"
	"github.com/tinybank/tinybank/builtin/bank/stakes"
	"github.com/tinybank/tinybank/builtin/params"
	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/log"
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
)

var logger = log.WithContext("pkg", "bank")

func SetLogger(l log.Logger) {
	logger = l
}

// TokenLedger is the token the vault stakes and pays rewards in.
type TokenLedger interface {
	// TransferInto pulls amount from from into vault using the allowance from granted to vault.
	TransferInto(vault, from thor.Address, amount *big.Int) error
	// TransferOut pays amount held by vault to to.
	TransferOut(vault, to thor.Address, amount *big.Int) error
	// MintTo mints amount to to. vault must be the token's minter.
	MintTo(vault, to thor.Address, amount *big.Int) error
}

// Steps supplies the monotonic step counter rewards accrue on.
type Steps interface {
	Number() uint32
}

// Bank implements native methods of `TinyBank` contract.
type Bank struct {
	sctx  *solidity.Context
	token TokenLedger
	steps Steps

	stakesService *stakes.Service
	rewardService *reward.Service
	gate          *managers.Gate
}

// New create a new instance. events must be the log shared with token so that
// a failed operation discards the token events too.
func New(
	addr thor.Address,
	state *state.State,
	events *solidity.Log,
	token TokenLedger,
	params *params.Params,
	steps Steps,
) *Bank {
	sctx := solidity.NewContext(addr, state, events)
	return &Bank{
		sctx:          sctx,
		token:         token,
		steps:         steps,
		stakesService: stakes.New(sctx),
		rewardService: reward.New(params),
		gate:          managers.New(sctx),
	}
}

// Address returns the vault address.
func (b *Bank) Address() thor.Address {
	return b.sctx.Address()
}

// Initialize deploys the vault with its fixed manager set and initial reward rate.
func (b *Bank) Initialize(managers []thor.Address, rewardPerBlock *big.Int) error {
	return b.sctx.Atomic(func() error {
		if err := b.gate.Initialize(managers); err != nil {
			return err
		}
		return b.rewardService.SetRate(rewardPerBlock)
	})
}

func checkAmount(amount *big.Int) error {
	if !solidity.IsUint256(amount) || amount.Sign() == 0 {
		return reverts.New(reverts.KindInvalidAmount, reverts.MsgInvalidAmount)
	}
	return nil
}

// Stake pulls amount from caller into the vault. The caller must have approved
// the vault for at least amount.
func (b *Bank) Stake(caller thor.Address, amount *big.Int) (err error) {
	defer func() { b.record("stake", err) }()

	if err := checkAmount(amount); err != nil {
		return err
	}
	return b.sctx.Atomic(func() error {
		point := b.steps.Number()
		if err := b.token.TransferInto(b.Address(), caller, amount); err != nil {
			return err
		}
		stake, err := b.stakesService.Add(caller, amount, point)
		if err != nil {
			return err
		}
		logger.Debug("staked", "caller", caller, "amount", amount, "staked", stake.Amount, "step", point)
		return nil
	})
}

// Withdraw returns amount of principal to caller and pays the reward accrued
// since the last settlement.
func (b *Bank) Withdraw(caller thor.Address, amount *big.Int) (err error) {
	defer func() { b.record("withdraw", err) }()

	if err := checkAmount(amount); err != nil {
		return err
	}
	return b.sctx.Atomic(func() error {
		stake, err := b.stakesService.Get(caller)
		if err != nil {
			return err
		}
		if stake.Amount.Cmp(amount) < 0 {
			return reverts.New(reverts.KindInsufficientFunds, reverts.MsgInsufficientStake)
		}

		point := b.steps.Number()
		owed, err := b.rewardService.Owed(stake.LastAccrualPoint, point)
		if err != nil {
			return err
		}
		if _, err := b.stakesService.Remove(caller, amount, point); err != nil {
			return err
		}
		if err := b.token.TransferOut(b.Address(), caller, amount); err != nil {
			return err
		}
		if owed.Sign() > 0 {
			if err := b.token.MintTo(b.Address(), caller, owed); err != nil {
				return err
			}
		}
		logger.Debug("withdrawn", "caller", caller, "amount", amount, "reward", owed, "step", point)
		return nil
	})
}

// Staked returns the amount staked by addr.
func (b *Bank) Staked(addr thor.Address) (*big.Int, error) {
	stake, err := b.stakesService.Get(addr)
	if err != nil {
		return nil, err
	}
	return stake.Amount, nil
}

// TotalStaked returns the sum of all stakes.
func (b *Bank) TotalStaked() (*big.Int, error) {
	return b.stakesService.Total()
}

// PendingReward returns the reward addr has accrued up to the current step.
// It does not settle.
func (b *Bank) PendingReward(addr thor.Address) (*big.Int, error) {
	return b.RewardAt(addr, b.steps.Number())
}

// RewardAt previews the reward a withdraw by addr executed at step would pay,
// at the current rate.
func (b *Bank) RewardAt(addr thor.Address, step uint32) (*big.Int, error) {
	stake, err := b.stakesService.Get(addr)
	if err != nil {
		return nil, err
	}
	if stake.IsEmpty() || step < stake.LastAccrualPoint {
		return new(big.Int), nil
	}
	return b.rewardService.Owed(stake.LastAccrualPoint, step)
}

// Confirm registers caller's approval of the next reward rate change.
func (b *Bank) Confirm(caller thor.Address) (err error) {
	defer func() { b.record("confirm", err) }()

	return b.sctx.Atomic(func() error {
		state, err := b.gate.Confirm(caller)
		if err != nil {
			return err
		}
		logger.Debug("confirmed", "manager", caller, "state", state)
		return nil
	})
}

// SetRewardPerBlock changes the reward rate. It requires every manager to have
// confirmed and starts a new confirmation round.
func (b *Bank) SetRewardPerBlock(caller thor.Address, rate *big.Int) (err error) {
	defer func() { b.record("set_reward_per_block", err) }()

	if !solidity.IsUint256(rate) {
		return reverts.New(reverts.KindInvalidAmount, "invalid reward rate")
	}
	return b.sctx.Atomic(func() error {
		if err := b.gate.Consume(); err != nil {
			return err
		}
		if err := b.rewardService.SetRate(rate); err != nil {
			return err
		}
		logger.Info("reward rate changed", "caller", caller, "rate", rate)
		return nil
	})
}

func (b *Bank) RewardPerBlock() (*big.Int, error) {
	return b.rewardService.Rate()
}

func (b *Bank) Managers() ([]thor.Address, error) {
	return b.gate.Managers()
}

func (b *Bank) IsManager(addr thor.Address) (bool, error) {
	return b.gate.IsManager(addr)
}

// Confirmed returns whether manager confirmed in the current round.
func (b *Bank) Confirmed(manager thor.Address) (bool, error) {
	return b.gate.Confirmed(manager)
}

func (b *Bank) ConfirmationCount() (int, error) {
	return b.gate.Count()
}

func (b *Bank) GateState() (managers.State, error) {
	return b.gate.State()
}

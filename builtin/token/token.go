// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/log"
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
	"github.com/tinybank/tinybank/tx"
)

var logger = log.WithContext("pkg", "token")

var (
	slotName        = nameToSlot("name")
	slotSymbol      = nameToSlot("symbol")
	slotDecimals    = nameToSlot("decimals")
	slotTotalSupply = nameToSlot("total-supply")
	slotOwner       = nameToSlot("owner")
	slotMinter      = nameToSlot("minter")
	slotBalances    = nameToSlot("balances")
	slotAllowances  = nameToSlot("allowances")
)

func nameToSlot(name string) thor.Bytes32 {
	return thor.BytesToBytes32([]byte(name))
}

func allowanceKey(owner, spender thor.Address) thor.Bytes32 {
	return thor.Blake2b(owner.Bytes(), spender.Bytes())
}

// Token implements native methods of the `MyToken` contract.
type Token struct {
	sctx *solidity.Context

	name        *solidity.Value[string]
	symbol      *solidity.Value[string]
	decimals    *solidity.Uint256
	totalSupply *solidity.Uint256
	owner       *solidity.Address
	minter      *solidity.Address
	balances    *solidity.Mapping[thor.Address, *big.Int]
	allowances  *solidity.Mapping[thor.Bytes32, *big.Int]
}

// New create a new instance. Events are appended to events, which may be nil.
func New(addr thor.Address, state *state.State, events *solidity.Log) *Token {
	sctx := solidity.NewContext(addr, state, events)
	return &Token{
		sctx:        sctx,
		name:        solidity.NewValue[string](sctx, slotName),
		symbol:      solidity.NewValue[string](sctx, slotSymbol),
		decimals:    solidity.NewUint256(sctx, slotDecimals),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		owner:       solidity.NewAddress(sctx, slotOwner),
		minter:      solidity.NewAddress(sctx, slotMinter),
		balances:    solidity.NewMapping[thor.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[thor.Bytes32, *big.Int](sctx, slotAllowances),
	}
}

// Address returns the contract address.
func (t *Token) Address() thor.Address {
	return t.sctx.Address()
}

// Initialize deploys the token: mintingAmount whole tokens are minted to owner,
// who is also the initial minter.
func (t *Token) Initialize(name, symbol string, decimals uint8, mintingAmount uint64, owner thor.Address) error {
	if owner.IsZero() {
		return errors.New("token owner must not be zero")
	}
	supply := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	supply.Mul(supply, new(big.Int).SetUint64(mintingAmount))

	return t.sctx.Atomic(func() error {
		if err := t.name.Set(name); err != nil {
			return err
		}
		if err := t.symbol.Set(symbol); err != nil {
			return err
		}
		t.decimals.Set(big.NewInt(int64(decimals)))
		t.owner.Set(owner)
		t.minter.Set(owner)
		return t.mint(owner, supply)
	})
}

func (t *Token) Name() (string, error) {
	return t.name.Get()
}

func (t *Token) Symbol() (string, error) {
	return t.symbol.Get()
}

func (t *Token) Decimals() (uint8, error) {
	d, err := t.decimals.Get()
	if err != nil {
		return 0, err
	}
	return uint8(d.Uint64()), nil
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) Owner() (thor.Address, error) {
	return t.owner.Get()
}

// Minter returns the single account allowed to mint.
func (t *Token) Minter() (thor.Address, error) {
	return t.minter.Get()
}

func (t *Token) BalanceOf(addr thor.Address) (*big.Int, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return bal, nil
}

func (t *Token) Allowance(owner, spender thor.Address) (*big.Int, error) {
	allowance, err := t.allowances.Get(allowanceKey(owner, spender))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowance")
	}
	return allowance, nil
}

// Transfer moves amount from caller to to.
func (t *Token) Transfer(caller thor.Address, amount *big.Int, to thor.Address) error {
	return t.sctx.Atomic(func() error {
		return t.transfer(caller, to, amount)
	})
}

// Approve sets the amount spender may move out of caller's balance.
func (t *Token) Approve(caller, spender thor.Address, amount *big.Int) error {
	if !solidity.IsUint256(amount) {
		return reverts.New(reverts.KindInvalidAmount, reverts.MsgInvalidAmount)
	}
	return t.sctx.Atomic(func() error {
		if err := t.setAllowance(caller, spender, amount); err != nil {
			return err
		}
		t.sctx.Emit(tx.NewApprovalEvent(t.Address(), caller, spender, amount))
		return nil
	})
}

// TransferFrom moves amount from from to to, spending caller's allowance.
func (t *Token) TransferFrom(caller, from, to thor.Address, amount *big.Int) error {
	if !solidity.IsUint256(amount) {
		return reverts.New(reverts.KindInvalidAmount, reverts.MsgInvalidAmount)
	}
	return t.sctx.Atomic(func() error {
		allowance, err := t.Allowance(from, caller)
		if err != nil {
			return err
		}
		if allowance.Cmp(amount) < 0 {
			return reverts.New(reverts.KindInsufficientFunds, reverts.MsgInsufficientAllowance)
		}
		if err := t.setAllowance(from, caller, allowance.Sub(allowance, amount)); err != nil {
			return err
		}
		return t.transfer(from, to, amount)
	})
}

// SetManager designates the minter. Only the owner may call it.
func (t *Token) SetManager(caller, manager thor.Address) error {
	owner, err := t.owner.Get()
	if err != nil {
		return err
	}
	if caller != owner {
		return reverts.New(reverts.KindUnauthorized, reverts.MsgNotOwner)
	}
	t.minter.Set(manager)
	logger.Debug("minter changed", "minter", manager)
	return nil
}

// Mint creates amount new tokens for to. Only the minter may call it.
func (t *Token) Mint(caller, to thor.Address, amount *big.Int) error {
	minter, err := t.minter.Get()
	if err != nil {
		return err
	}
	if caller != minter {
		return reverts.New(reverts.KindUnauthorized, reverts.MsgNotMinter)
	}
	return t.sctx.Atomic(func() error {
		return t.mint(to, amount)
	})
}

// TransferInto pulls amount from from into vault, spending the allowance from granted to vault.
func (t *Token) TransferInto(vault, from thor.Address, amount *big.Int) error {
	return t.TransferFrom(vault, from, vault, amount)
}

// TransferOut pays amount held by vault to to.
func (t *Token) TransferOut(vault, to thor.Address, amount *big.Int) error {
	return t.Transfer(vault, amount, to)
}

// MintTo mints amount to to on behalf of vault, which must be the minter.
func (t *Token) MintTo(vault, to thor.Address, amount *big.Int) error {
	return t.Mint(vault, to, amount)
}

func (t *Token) transfer(from, to thor.Address, amount *big.Int) error {
	if !solidity.IsUint256(amount) {
		return reverts.New(reverts.KindInvalidAmount, reverts.MsgInvalidAmount)
	}
	bal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.New(reverts.KindInsufficientFunds, reverts.MsgInsufficientBalance)
	}
	if err := t.setBalance(from, bal.Sub(bal, amount)); err != nil {
		return err
	}
	// read after the debit so a self transfer nets to zero
	toBal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := t.setBalance(to, toBal.Add(toBal, amount)); err != nil {
		return err
	}
	t.sctx.Emit(tx.NewTransferEvent(t.Address(), from, to, amount))
	return nil
}

func (t *Token) mint(to thor.Address, amount *big.Int) error {
	if !solidity.IsUint256(amount) {
		return reverts.New(reverts.KindInvalidAmount, reverts.MsgInvalidAmount)
	}
	supply, err := t.totalSupply.Get()
	if err != nil {
		return err
	}
	if !solidity.IsUint256(supply.Add(supply, amount)) {
		return reverts.New(reverts.KindInvalidAmount, "total supply overflow")
	}
	t.totalSupply.Set(supply)

	bal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := t.setBalance(to, bal.Add(bal, amount)); err != nil {
		return err
	}
	t.sctx.Emit(tx.NewTransferEvent(t.Address(), thor.Address{}, to, amount))
	logger.Debug("minted", "to", to, "amount", amount)
	return nil
}

func (t *Token) setBalance(addr thor.Address, bal *big.Int) error {
	if bal.Sign() == 0 {
		t.balances.Delete(addr)
		return nil
	}
	if err := t.balances.Set(addr, bal); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	return nil
}

func (t *Token) setAllowance(owner, spender thor.Address, amount *big.Int) error {
	key := allowanceKey(owner, spender)
	if amount.Sign() == 0 {
		t.allowances.Delete(key)
		return nil
	}
	if err := t.allowances.Set(key, amount); err != nil {
		return errors.Wrap(err, "failed to set allowance")
	}
	return nil
}

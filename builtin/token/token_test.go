// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
	"github.com/tinybank/tinybank/tx"
)

const mintingAmount = 100

var (
	signer0 = thor.BytesToAddress([]byte("signer0"))
	signer1 = thor.BytesToAddress([]byte("signer1"))
	bank    = thor.BytesToAddress([]byte("bank"))
)

func parseUnits(s string) *big.Int {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic(s)
	}
	r.Mul(r, new(big.Rat).SetInt(thor.Units(1)))
	return new(big.Int).Quo(r.Num(), r.Denom())
}

func newToken(t *testing.T) (*Token, *solidity.Log) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events := &solidity.Log{}
	tk := New(thor.TokenContractAddress, state.New(db), events)
	require.NoError(t, tk.Initialize("MyToken", "MT", thor.Decimals, mintingAmount, signer0))
	return tk, events
}

func TestBasicState(t *testing.T) {
	tk, events := newToken(t)

	name, err := tk.Name()
	require.NoError(t, err)
	assert.Equal(t, "MyToken", name)

	symbol, err := tk.Symbol()
	require.NoError(t, err)
	assert.Equal(t, "MT", symbol)

	decimals, err := tk.Decimals()
	require.NoError(t, err)
	assert.Equal(t, uint8(18), decimals)

	supply, err := tk.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, thor.Units(mintingAmount), supply)

	bal, err := tk.BalanceOf(signer0)
	require.NoError(t, err)
	assert.Equal(t, thor.Units(mintingAmount), bal)

	owner, err := tk.Owner()
	require.NoError(t, err)
	assert.Equal(t, signer0, owner)

	transfers := events.Events().Transfers()
	require.Len(t, transfers, 1)
	assert.True(t, transfers[0].Sender.IsZero())
	assert.Equal(t, signer0, transfers[0].Recipient)
}

func TestInitializeZeroOwner(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()
	tk := New(thor.TokenContractAddress, state.New(db), nil)
	assert.Error(t, tk.Initialize("MyToken", "MT", 18, 1, thor.Address{}))
}

func TestTransfer(t *testing.T) {
	tk, events := newToken(t)
	half := parseUnits("0.5")

	require.NoError(t, tk.Transfer(signer0, half, signer1))

	bal, err := tk.BalanceOf(signer1)
	require.NoError(t, err)
	assert.Equal(t, half, bal)

	transfers := events.Events().Transfers()
	require.Len(t, transfers, 2)
	assert.Equal(t, &tx.Transfer{Sender: signer0, Recipient: signer1, Amount: half}, transfers[1])
}

func TestTransferInsufficientBalance(t *testing.T) {
	tk, events := newToken(t)

	err := tk.Transfer(signer0, thor.Units(mintingAmount+1), signer1)
	assert.EqualError(t, err, "insufficient balance")
	assert.ErrorIs(t, err, reverts.KindInsufficientFunds)

	bal, err := tk.BalanceOf(signer0)
	require.NoError(t, err)
	assert.Equal(t, thor.Units(mintingAmount), bal)
	assert.Equal(t, 1, events.Len())
}

func TestSelfTransfer(t *testing.T) {
	tk, _ := newToken(t)

	require.NoError(t, tk.Transfer(signer0, thor.Units(1), signer0))
	bal, err := tk.BalanceOf(signer0)
	require.NoError(t, err)
	assert.Equal(t, thor.Units(mintingAmount), bal)
}

func TestInvalidAmount(t *testing.T) {
	tk, _ := newToken(t)

	for _, amount := range []*big.Int{nil, big.NewInt(-1), new(big.Int).Lsh(big.NewInt(1), 256)} {
		assert.ErrorIs(t, tk.Transfer(signer0, amount, signer1), reverts.KindInvalidAmount)
		assert.ErrorIs(t, tk.Approve(signer0, signer1, amount), reverts.KindInvalidAmount)
		assert.ErrorIs(t, tk.TransferFrom(signer1, signer0, signer1, amount), reverts.KindInvalidAmount)
	}
}

func TestApprove(t *testing.T) {
	tk, events := newToken(t)
	amount := thor.Units(10)

	require.NoError(t, tk.Approve(signer0, signer1, amount))

	approvals := events.Events().Filter(tx.ApprovalEventSig)
	require.Len(t, approvals, 1)
	assert.Equal(t, thor.BytesToBytes32(signer1.Bytes()), approvals[0].Topics[2])
	assert.Equal(t, amount, new(big.Int).SetBytes(approvals[0].Data))

	allowance, err := tk.Allowance(signer0, signer1)
	require.NoError(t, err)
	assert.Equal(t, amount, allowance)

	// reverse direction untouched
	allowance, err = tk.Allowance(signer1, signer0)
	require.NoError(t, err)
	assert.Equal(t, 0, allowance.Sign())
}

func TestTransferFrom(t *testing.T) {
	tk, events := newToken(t)
	amount := thor.Units(50)

	err := tk.TransferFrom(signer1, signer0, signer1, thor.Units(1))
	assert.EqualError(t, err, "insufficient allowance")
	assert.ErrorIs(t, err, reverts.KindInsufficientFunds)

	require.NoError(t, tk.Approve(signer0, signer1, amount))
	require.NoError(t, tk.TransferFrom(signer1, signer0, signer1, amount))

	transfers := events.Events().Transfers()
	assert.Equal(t, &tx.Transfer{Sender: signer0, Recipient: signer1, Amount: amount}, transfers[len(transfers)-1])

	bal0, err := tk.BalanceOf(signer0)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Sub(thor.Units(mintingAmount), amount), bal0)
	bal1, err := tk.BalanceOf(signer1)
	require.NoError(t, err)
	assert.Equal(t, amount, bal1)

	allowance, err := tk.Allowance(signer0, signer1)
	require.NoError(t, err)
	assert.Equal(t, 0, allowance.Sign())
}

func TestTransferFromInsufficientBalanceKeepsAllowance(t *testing.T) {
	tk, _ := newToken(t)
	require.NoError(t, tk.Approve(signer1, signer0, thor.Units(5)))

	err := tk.TransferFrom(signer0, signer1, signer0, thor.Units(5))
	assert.EqualError(t, err, "insufficient balance")

	allowance, err := tk.Allowance(signer1, signer0)
	require.NoError(t, err)
	assert.Equal(t, thor.Units(5), allowance)
}

func TestMint(t *testing.T) {
	tk, events := newToken(t)

	err := tk.SetManager(signer1, bank)
	assert.ErrorIs(t, err, reverts.KindUnauthorized)

	require.NoError(t, tk.SetManager(signer0, bank))
	minter, err := tk.Minter()
	require.NoError(t, err)
	assert.Equal(t, bank, minter)

	err = tk.Mint(signer0, signer0, thor.Units(1))
	assert.ErrorIs(t, err, reverts.KindUnauthorized)
	assert.EqualError(t, err, reverts.MsgNotMinter)

	require.NoError(t, tk.MintTo(bank, signer1, thor.Units(3)))
	bal, err := tk.BalanceOf(signer1)
	require.NoError(t, err)
	assert.Equal(t, thor.Units(3), bal)

	supply, err := tk.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, thor.Units(mintingAmount+3), supply)

	transfers := events.Events().Transfers()
	last := transfers[len(transfers)-1]
	assert.True(t, last.Sender.IsZero())
	assert.Equal(t, signer1, last.Recipient)
}

func TestVaultTransfers(t *testing.T) {
	tk, _ := newToken(t)
	amount := thor.Units(50)

	assert.ErrorIs(t, tk.TransferInto(bank, signer0, amount), reverts.KindInsufficientFunds)

	require.NoError(t, tk.Approve(signer0, bank, amount))
	require.NoError(t, tk.TransferInto(bank, signer0, amount))

	vault, err := tk.BalanceOf(bank)
	require.NoError(t, err)
	assert.Equal(t, amount, vault)

	require.NoError(t, tk.TransferOut(bank, signer0, amount))
	bal, err := tk.BalanceOf(signer0)
	require.NoError(t, err)
	assert.Equal(t, thor.Units(mintingAmount), bal)

	assert.EqualError(t, tk.TransferOut(bank, signer0, big.NewInt(1)), "insufficient balance")
}

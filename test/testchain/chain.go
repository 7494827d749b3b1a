// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"math/big"

	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/genesis"
	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/thor"
)

// Chain wraps an in-memory devnet chain with shortcuts for common operations.
type Chain struct {
	*chain.Chain
	db       *lvldb.LevelDB
	accounts []genesis.DevAccount
}

// NewIntegrationTestChain deploys the devnet genesis on an in-memory database.
func NewIntegrationTestChain() (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	c, err := chain.New(db, genesis.NewDevnet())
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Chain{
		Chain:    c,
		db:       db,
		accounts: genesis.DevAccounts(),
	}, nil
}

func (c *Chain) Close() error {
	return c.db.Close()
}

// Database returns the underlying database.
func (c *Chain) Database() *lvldb.LevelDB {
	return c.db
}

// Owner is the devnet token owner, holding the whole supply at genesis.
func (c *Chain) Owner() thor.Address {
	return c.accounts[0].Address
}

// Managers are the devnet bank managers.
func (c *Chain) Managers() []thor.Address {
	out := make([]thor.Address, 0, thor.ManagerCount)
	for _, a := range c.accounts[:thor.ManagerCount] {
		out = append(out, a.Address)
	}
	return out
}

// Fund transfers amount from the owner to to.
func (c *Chain) Fund(to thor.Address, amount *big.Int) error {
	owner := c.Owner()
	_, err := c.Execute(owner, "token.transfer", func(env *chain.Env) error {
		return env.Token().Transfer(owner, amount, to)
	})
	return err
}

// Stake approves the bank and stakes amount on behalf of caller, in two blocks.
func (c *Chain) Stake(caller thor.Address, amount *big.Int) error {
	if _, err := c.Execute(caller, "token.approve", func(env *chain.Env) error {
		return env.Token().Approve(caller, thor.BankContractAddress, amount)
	}); err != nil {
		return err
	}
	_, err := c.Execute(caller, "bank.stake", func(env *chain.Env) error {
		return env.Bank().Stake(caller, amount)
	})
	return err
}

// Withdraw withdraws amount of caller's stake.
func (c *Chain) Withdraw(caller thor.Address, amount *big.Int) error {
	_, err := c.Execute(caller, "bank.withdraw", func(env *chain.Env) error {
		return env.Bank().Withdraw(caller, amount)
	})
	return err
}

// Seal commits an empty block.
func (c *Chain) Seal() error {
	_, err := c.Execute(thor.Address{}, "seal", func(*chain.Env) error { return nil })
	return err
}

func (c *Chain) BalanceOf(addr thor.Address) (bal *big.Int, err error) {
	err = c.View(func(env *chain.Env) error {
		bal, err = env.Token().BalanceOf(addr)
		return err
	})
	return
}

func (c *Chain) Staked(addr thor.Address) (staked *big.Int, err error) {
	err = c.View(func(env *chain.Env) error {
		staked, err = env.Bank().Staked(addr)
		return err
	})
	return
}

func (c *Chain) TotalStaked() (total *big.Int, err error) {
	err = c.View(func(env *chain.Env) error {
		total, err = env.Bank().TotalStaked()
		return err
	})
	return
}

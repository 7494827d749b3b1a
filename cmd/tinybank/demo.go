// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/genesis"
	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/thor"
)

func demoAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	_, err := runDemo(os.Stdout)
	return err
}

type demoResult struct {
	Balance        *big.Int
	RewardPerBlock *big.Int
	Blocks         uint32
}

// runDemo stakes half of the owner's supply, lets five blocks pass, withdraws,
// then has every manager confirm a doubled reward rate.
func runDemo(out io.Writer) (*demoResult, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	c, err := chain.New(db, genesis.NewDevnet())
	if err != nil {
		return nil, err
	}

	accs := genesis.DevAccounts()
	owner := accs[0].Address
	amount := thor.Units(50)

	step := func(op string, fn func(env *chain.Env) error) error {
		receipt, err := c.Execute(owner, op, fn)
		if err != nil {
			return errors.Wrap(err, op)
		}
		fmt.Fprintf(out, "#%-3d %-24s ok\n", receipt.BlockNumber, op)
		return nil
	}

	if err := step("token.approve", func(env *chain.Env) error {
		return env.Token().Approve(owner, thor.BankContractAddress, amount)
	}); err != nil {
		return nil, err
	}
	if err := step("bank.stake", func(env *chain.Env) error {
		return env.Bank().Stake(owner, amount)
	}); err != nil {
		return nil, err
	}
	for range 5 {
		if err := step("token.transfer", func(env *chain.Env) error {
			return env.Token().Transfer(owner, thor.Units(1), owner)
		}); err != nil {
			return nil, err
		}
	}
	if err := step("bank.withdraw", func(env *chain.Env) error {
		return env.Bank().Withdraw(owner, amount)
	}); err != nil {
		return nil, err
	}

	for _, acc := range accs[:thor.ManagerCount] {
		receipt, err := c.Execute(acc.Address, "bank.confirm", func(env *chain.Env) error {
			return env.Bank().Confirm(acc.Address)
		})
		if err != nil {
			return nil, errors.Wrap(err, "bank.confirm")
		}
		fmt.Fprintf(out, "#%-3d %-24s %v\n", receipt.BlockNumber, "bank.confirm", acc.Address)
	}
	if err := step("bank.setRewardPerBlock", func(env *chain.Env) error {
		return env.Bank().SetRewardPerBlock(owner, thor.Units(2))
	}); err != nil {
		return nil, err
	}

	res := &demoResult{Blocks: c.BestNumber()}
	err = c.View(func(env *chain.Env) error {
		var err error
		if res.Balance, err = env.Token().BalanceOf(owner); err != nil {
			return err
		}
		res.RewardPerBlock, err = env.Bank().RewardPerBlock()
		return err
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "balance of %v: %v\n", owner, res.Balance)
	fmt.Fprintf(out, "reward per block: %v\n", res.RewardPerBlock)
	return res, nil
}

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/thor"
)

// Genesis deploys the token and the bank into block 0.
type Genesis struct {
	config *Config
	id     thor.Bytes32
	name   string
}

// New creates a genesis from a validated config.
func New(config *Config, name string) (*Genesis, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, errors.Wrap(err, "encode genesis config")
	}
	return &Genesis{
		config: config,
		id:     thor.Blake2b(data),
		name:   name,
	}, nil
}

// ID returns the genesis id, derived from the config.
func (g *Genesis) ID() thor.Bytes32 {
	return g.id
}

// Name returns name of genesis.
func (g *Genesis) Name() string {
	return g.name
}

func (g *Genesis) Config() *Config {
	return g.config
}

// Deploy initializes the token, pays the allocations, initializes the bank and
// makes it the token minter.
func (g *Genesis) Deploy(env *chain.Env) error {
	cfg := g.config
	tk := env.Token()
	if err := tk.Initialize(cfg.Name, cfg.Symbol, cfg.Decimals, cfg.Supply, cfg.Owner); err != nil {
		return errors.Wrap(err, "initialize token")
	}
	for _, a := range cfg.Allocations {
		if err := tk.Transfer(cfg.Owner, cfg.Units(a.Amount), a.Address); err != nil {
			return errors.Wrapf(err, "allocate to %v", a.Address)
		}
	}

	bank := env.Bank()
	if err := bank.Initialize(cfg.Managers, cfg.Reward()); err != nil {
		return errors.Wrap(err, "initialize bank")
	}
	if err := tk.SetManager(cfg.Owner, bank.Address()); err != nil {
		return errors.Wrap(err, "set token manager")
	}
	return nil
}

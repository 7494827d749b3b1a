// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tinybank/tinybank/thor"
)

// Config is the user customized deployment of the token and the bank.
type Config struct {
	Name     string       `yaml:"name"`
	Symbol   string       `yaml:"symbol"`
	Decimals uint8        `yaml:"decimals"`
	Supply   uint64       `yaml:"supply"` // in whole tokens, minted to the owner
	Owner    thor.Address `yaml:"owner"`
	// the fixed bank manager set
	Managers       []thor.Address       `yaml:"managers"`
	RewardPerBlock *math.HexOrDecimal256 `yaml:"rewardPerBlock"` // in the smallest unit
	Allocations    []Allocation         `yaml:"allocations,omitempty"`
}

// Allocation is paid out of the owner's supply at deployment.
type Allocation struct {
	Address thor.Address `yaml:"address"`
	Amount  uint64       `yaml:"amount"` // in whole tokens
}

// LoadConfig reads a config from the yaml file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis config")
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a yaml config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Units converts whole tokens into the smallest unit.
func (c *Config) Units(whole uint64) *big.Int {
	x := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(c.Decimals)), nil)
	return x.Mul(x, new(big.Int).SetUint64(whole))
}

// Reward returns the initial reward per block.
func (c *Config) Reward() *big.Int {
	if c.RewardPerBlock == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(c.RewardPerBlock))
}

func (c *Config) Validate() error {
	if c.Name == "" || c.Symbol == "" {
		return errors.New("token name and symbol are required")
	}
	if c.Decimals > 77 {
		return errors.Errorf("decimals %d out of range", c.Decimals)
	}
	if c.Owner.IsZero() {
		return errors.New("owner is required")
	}
	if len(c.Managers) != thor.ManagerCount {
		return errors.Errorf("exactly %d managers required, got %d", thor.ManagerCount, len(c.Managers))
	}
	seen := make(map[thor.Address]bool)
	for _, m := range c.Managers {
		if m.IsZero() {
			return errors.New("zero manager address")
		}
		if seen[m] {
			return errors.Errorf("duplicated manager %v", m)
		}
		seen[m] = true
	}
	if c.RewardPerBlock != nil && (*big.Int)(c.RewardPerBlock).Sign() < 0 {
		return errors.New("negative reward per block")
	}

	var allocated uint64
	for _, a := range c.Allocations {
		if a.Address.IsZero() {
			return errors.New("zero allocation address")
		}
		allocated += a.Amount
		if allocated < a.Amount || allocated > c.Supply {
			return errors.New("allocations exceed supply")
		}
	}
	return nil
}

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/genesis"
	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/thor"
)

const customYAML = `
name: MyToken
symbol: MT
decimals: 18
supply: 1000
owner: "0xf077b491b355e64048ce21e3a6fc4751eeea77fa"
managers:
  - "0x435933c8064b4ae76be665428e0307ef2ccfbd68"
  - "0x0f872421dc479f3c11edd89512731814d0598db5"
  - "0xf370940abdbd2583bc80bfc19d19bc216c88ccf0"
  - "0x99602e4bbc0503b8ff4432bb1857f916c3653b85"
  - "0x61e7d0c2b25706be3485980f39a3a994a8207acf"
rewardPerBlock: "2000000000000000000"
allocations:
  - address: "0x361277d1b27150ea6a49e8fd4fc8a7fcb0cfc2b8"
    amount: 250
`

func TestDevAccounts(t *testing.T) {
	accs := genesis.DevAccounts()
	require.Len(t, accs, 10)
	assert.Equal(t, thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"), accs[0].Address)
	assert.Equal(t, accs, genesis.DevAccounts())

	cfg := genesis.DevnetConfig()
	assert.Equal(t, accs[0].Address, cfg.Owner)
	require.Len(t, cfg.Managers, thor.ManagerCount)
	for i, m := range cfg.Managers {
		assert.Equal(t, accs[i].Address, m)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := genesis.ParseConfig([]byte(customYAML))
	require.NoError(t, err)

	assert.Equal(t, "MyToken", cfg.Name)
	assert.Equal(t, uint64(1000), cfg.Supply)
	assert.Len(t, cfg.Managers, thor.ManagerCount)
	assert.Equal(t, thor.Units(2).String(), cfg.Reward().String())
	require.Len(t, cfg.Allocations, 1)
	assert.Equal(t, uint64(250), cfg.Allocations[0].Amount)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customYAML), 0o600))

	cfg, err := genesis.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "MT", cfg.Symbol)

	_, err = genesis.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *genesis.Config)
		errMsg string
	}{
		{"missing name", func(cfg *genesis.Config) { cfg.Name = "" }, "token name and symbol are required"},
		{"zero owner", func(cfg *genesis.Config) { cfg.Owner = thor.Address{} }, "owner is required"},
		{"four managers", func(cfg *genesis.Config) { cfg.Managers = cfg.Managers[:4] }, "exactly 5 managers required, got 4"},
		{"duplicated manager", func(cfg *genesis.Config) { cfg.Managers[4] = cfg.Managers[0] }, "duplicated manager"},
		{"zero manager", func(cfg *genesis.Config) { cfg.Managers[2] = thor.Address{} }, "zero manager address"},
		{"over allocated", func(cfg *genesis.Config) {
			cfg.Allocations = []genesis.Allocation{{Address: thor.Address{1}, Amount: cfg.Supply + 1}}
		}, "allocations exceed supply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := genesis.DevnetConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
	require.NoError(t, genesis.DevnetConfig().Validate())
}

func TestGenesisID(t *testing.T) {
	assert.Equal(t, genesis.NewDevnet().ID(), genesis.NewDevnet().ID())
	assert.Equal(t, "devnet", genesis.NewDevnet().Name())

	cfg := genesis.DevnetConfig()
	cfg.RewardPerBlock = nil
	other, err := genesis.New(cfg, "custom")
	require.NoError(t, err)
	assert.NotEqual(t, genesis.NewDevnet().ID(), other.ID())
}

func TestDeployCustom(t *testing.T) {
	cfg, err := genesis.ParseConfig([]byte(customYAML))
	require.NoError(t, err)
	gen, err := genesis.New(cfg, "custom")
	require.NoError(t, err)

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	c, err := chain.New(db, gen)
	require.NoError(t, err)

	require.NoError(t, c.View(func(env *chain.Env) error {
		tk := env.Token()
		owner, err := tk.BalanceOf(cfg.Owner)
		require.NoError(t, err)
		assert.Equal(t, thor.Units(750).String(), owner.String())

		alloc, err := tk.BalanceOf(cfg.Allocations[0].Address)
		require.NoError(t, err)
		assert.Equal(t, thor.Units(250).String(), alloc.String())

		minter, err := tk.Minter()
		require.NoError(t, err)
		assert.Equal(t, thor.BankContractAddress, minter)

		b := env.Bank()
		managers, err := b.Managers()
		require.NoError(t, err)
		assert.Equal(t, cfg.Managers, managers)

		rate, err := b.RewardPerBlock()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(2e18).String(), rate.String())
		return nil
	}))
}

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
)

func TestParamsGetSet(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()
	st := state.New(db)
	p := New(thor.ParamsContractAddress, st)

	v, err := p.Get(thor.KeyRewardPerBlock)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, p.Set(thor.KeyRewardPerBlock, thor.InitialRewardPerBlock))
	v, err = p.Get(thor.KeyRewardPerBlock)
	require.NoError(t, err)
	assert.Equal(t, thor.InitialRewardPerBlock, v)

	require.NoError(t, p.Set(thor.KeyRewardPerBlock, big.NewInt(0)))
	v, err = p.Get(thor.KeyRewardPerBlock)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())
}

func TestParamsCommit(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()
	st := state.New(db)
	require.NoError(t, New(thor.ParamsContractAddress, st).Set(thor.KeyRewardPerBlock, big.NewInt(7)))

	batch := db.NewBatch()
	require.NoError(t, st.Commit(batch))
	require.NoError(t, batch.Write())

	v, err := New(thor.ParamsContractAddress, state.New(db)).Get(thor.KeyRewardPerBlock)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), v)
}

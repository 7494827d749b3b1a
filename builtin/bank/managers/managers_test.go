// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package managers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
)

var managerSet = []thor.Address{{1}, {2}, {3}, {4}, {5}}

func newGate(t *testing.T) *Gate {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	g := New(solidity.NewContext(thor.BytesToAddress([]byte("bank")), state.New(db), nil))
	require.NoError(t, g.Initialize(managerSet))
	return g
}

func requireState(t *testing.T, g *Gate, want State) {
	got, err := g.State()
	require.NoError(t, err)
	require.Equal(t, want, got, "want %v got %v", want, got)
}

func TestInitialize(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()
	g := New(solidity.NewContext(thor.Address{9}, state.New(db), nil))

	assert.Error(t, g.Initialize(nil))
	assert.Error(t, g.Initialize([]thor.Address{{1}, {}}))
	assert.Error(t, g.Initialize([]thor.Address{{1}, {1}}))
	require.NoError(t, g.Initialize(managerSet))
	assert.Error(t, g.Initialize(managerSet))

	managers, err := g.Managers()
	require.NoError(t, err)
	assert.Equal(t, managerSet, managers)

	ok, err := g.IsManager(thor.Address{3})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = g.IsManager(thor.Address{6})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmNonManager(t *testing.T) {
	g := newGate(t)
	_, err := g.Confirm(managerSet[0])
	require.NoError(t, err)

	_, err = g.Confirm(thor.Address{6})
	assert.ErrorIs(t, err, reverts.KindUnauthorized)
	assert.EqualError(t, err, "You are not a managers")

	n, err := g.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	requireState(t, g, PartiallyConfirmed)
}

func TestConfirmIdempotent(t *testing.T) {
	g := newGate(t)

	for range 3 {
		state, err := g.Confirm(managerSet[1])
		require.NoError(t, err)
		assert.Equal(t, PartiallyConfirmed, state)
	}
	n, err := g.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ok, err := g.Confirmed(managerSet[1])
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = g.Confirmed(managerSet[0])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnanimity(t *testing.T) {
	g := newGate(t)
	requireState(t, g, Empty)
	assert.ErrorIs(t, g.Consume(), reverts.KindConfirmationIncomplete)

	for i, m := range managerSet {
		if i > 0 && i < len(managerSet) {
			err := g.Consume()
			assert.ErrorIs(t, err, reverts.KindConfirmationIncomplete)
			assert.EqualError(t, err, "Not all managers confirmed yet")
		}
		state, err := g.Confirm(m)
		require.NoError(t, err)
		if i == len(managerSet)-1 {
			assert.Equal(t, FullyConfirmed, state)
		} else {
			assert.Equal(t, PartiallyConfirmed, state)
		}
	}

	require.NoError(t, g.Consume())
	requireState(t, g, Empty)
	for _, m := range managerSet {
		ok, err := g.Confirmed(m)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// nothing carries over to the next round
	assert.ErrorIs(t, g.Consume(), reverts.KindConfirmationIncomplete)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Empty", Empty.String())
	assert.Equal(t, "PartiallyConfirmed", PartiallyConfirmed.String())
	assert.Equal(t, "FullyConfirmed", FullyConfirmed.String())
	assert.Equal(t, "Unknown", State(9).String())
}

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
	"github.com/tinybank/tinybank/tx"
)

type record struct {
	Amount *big.Int
	Point  uint32
}

// newTestContext returns a fresh Context with in-memory DB.
func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(thor.Address{1}, state.New(db), &Log{})
}

func TestMappingAbsentKey(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, *record](ctx, thor.Bytes32{1})

	got, err := m.Get(thor.Address{9})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Amount)
	assert.Equal(t, uint32(0), got.Point)
}

func TestMappingSetGetDelete(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, *record](ctx, thor.Bytes32{1})
	key := thor.Address{2}

	require.NoError(t, m.Set(key, &record{Amount: big.NewInt(42), Point: 7}))
	got, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), got.Amount)
	assert.Equal(t, uint32(7), got.Point)

	// other keys and bases are untouched
	other, err := m.Get(thor.Address{3})
	require.NoError(t, err)
	assert.Nil(t, other.Amount)
	shadow := NewMapping[thor.Address, *record](ctx, thor.Bytes32{2})
	other, err = shadow.Get(key)
	require.NoError(t, err)
	assert.Nil(t, other.Amount)

	m.Delete(key)
	got, err = m.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got.Amount)
}

func TestMappingBool(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, bool](ctx, thor.Bytes32{1})

	ok, err := m.Get(thor.Address{1})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(thor.Address{1}, true))
	ok, err = m.Get(thor.Address{1})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, thor.Bytes32{5})

	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	u.Set(big.NewInt(10))
	require.NoError(t, u.Add(big.NewInt(5)))
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(15), v)

	require.NoError(t, u.Sub(big.NewInt(15)))
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	assert.ErrorIs(t, u.Sub(big.NewInt(1)), errUnderflow)
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, thor.Bytes32{6})

	got, err := a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	want := thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	a.Set(want)
	got, err = a.Get()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValue(t *testing.T) {
	ctx := newTestContext(t)
	v := NewValue[[]thor.Address](ctx, thor.Bytes32{7})

	got, err := v.Get()
	require.NoError(t, err)
	assert.Empty(t, got)

	list := []thor.Address{{1}, {2}, {3}}
	require.NoError(t, v.Set(list))
	got, err = v.Get()
	require.NoError(t, err)
	assert.Equal(t, list, got)

	s := NewValue[string](ctx, thor.Bytes32{8})
	require.NoError(t, s.Set("MyToken"))
	name, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "MyToken", name)
}

func TestAtomic(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, thor.Bytes32{1})
	u.Set(big.NewInt(1))
	ctx.Emit(tx.NewTransferEvent(ctx.Address(), thor.Address{}, thor.Address{1}, big.NewInt(1)))

	err := ctx.Atomic(func() error {
		u.Set(big.NewInt(100))
		ctx.Emit(tx.NewTransferEvent(ctx.Address(), thor.Address{1}, thor.Address{2}, big.NewInt(99)))
		return errUnderflow
	})
	assert.ErrorIs(t, err, errUnderflow)

	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), v)
	assert.Equal(t, 1, ctx.log.Len())

	require.NoError(t, ctx.Atomic(func() error {
		u.Set(big.NewInt(2))
		ctx.Emit(tx.NewTransferEvent(ctx.Address(), thor.Address{1}, thor.Address{2}, big.NewInt(1)))
		return nil
	}))
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2), v)
	assert.Equal(t, 2, ctx.log.Len())
}

func TestIsUint256(t *testing.T) {
	maxUint := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	assert.False(t, IsUint256(nil))
	assert.False(t, IsUint256(big.NewInt(-1)))
	assert.True(t, IsUint256(big.NewInt(0)))
	assert.True(t, IsUint256(maxUint))
	assert.False(t, IsUint256(new(big.Int).Add(maxUint, big.NewInt(1))))
}

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybank/tinybank/kv"
	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/thor"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStateStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := thor.BytesToAddress([]byte("account1"))
	key := thor.BytesToBytes32([]byte("key"))
	value := thor.BytesToBytes32([]byte("value"))

	got, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	st.SetStorage(addr, key, thor.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateEncodeDecode(t *testing.T) {
	st, _ := newTestState(t)

	addr := thor.BytesToAddress([]byte("account1"))
	key := thor.BytesToBytes32([]byte("big"))

	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(big.NewInt(42))
	}))

	var v big.Int
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &v)
	}))
	assert.Equal(t, int64(42), v.Int64())

	err := st.DecodeStorage(addr, key, func(raw []byte) error {
		var s struct{ A, B uint64 }
		return rlp.DecodeBytes(raw, &s)
	})
	var stErr *Error
	assert.ErrorAs(t, err, &stErr)
}

func TestStateRevert(t *testing.T) {
	st, _ := newTestState(t)

	addr := thor.BytesToAddress([]byte("account1"))
	key := thor.BytesToBytes32([]byte("key"))
	v1 := thor.BytesToBytes32([]byte{1})
	v2 := thor.BytesToBytes32([]byte{2})

	st.SetStorage(addr, key, v1)
	chk := st.NewCheckpoint()
	st.SetStorage(addr, key, v2)

	got, _ := st.GetStorage(addr, key)
	assert.Equal(t, v2, got)

	st.RevertTo(chk)
	got, _ = st.GetStorage(addr, key)
	assert.Equal(t, v1, got)

	// writes after revert land on the surviving level
	st.SetStorage(addr, key, v2)
	got, _ = st.GetStorage(addr, key)
	assert.Equal(t, v2, got)
}

func TestStateCommit(t *testing.T) {
	st, db := newTestState(t)

	addr := thor.BytesToAddress([]byte("account1"))
	k1 := thor.BytesToBytes32([]byte("k1"))
	k2 := thor.BytesToBytes32([]byte("k2"))

	st.SetStorage(addr, k1, thor.BytesToBytes32([]byte{1}))
	st.SetStorage(addr, k1, thor.BytesToBytes32([]byte{3}))
	st.SetStorage(addr, k2, thor.BytesToBytes32([]byte{2}))
	assert.Equal(t, 3, st.Changes())

	batch := db.NewBatch()
	require.NoError(t, st.Commit(batch))
	require.NoError(t, batch.Write())
	assert.Equal(t, 0, st.Changes())

	// a fresh state over the same db sees committed values
	reloaded := New(db)
	got, err := reloaded.GetStorage(addr, k1)
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte{3}), got)

	// clearing a slot deletes it on commit
	reloaded.SetStorage(addr, k2, thor.Bytes32{})
	batch = db.NewBatch()
	require.NoError(t, reloaded.Commit(batch))
	require.NoError(t, batch.Write())

	has, err := StorageBucket.NewGetter(db).Has(append(addr.Bytes(), k2.Bytes()...))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStateCommitFailureDropsJournal(t *testing.T) {
	st, db := newTestState(t)

	addr := thor.BytesToAddress([]byte("account1"))
	key := thor.BytesToBytes32([]byte("key"))
	st.SetStorage(addr, key, thor.BytesToBytes32([]byte{1}))

	errDisk := errors.New("disk full")
	broken := struct {
		kv.PutFunc
		kv.DeleteFunc
	}{
		func(_, _ []byte) error { return errDisk },
		func(_ []byte) error { return errDisk },
	}
	err := st.Commit(broken)
	var stErr *Error
	require.ErrorAs(t, err, &stErr)
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, 0, st.Changes())

	got, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	// the next commit carries only its own writes
	other := thor.BytesToBytes32([]byte("other"))
	st.SetStorage(addr, other, thor.BytesToBytes32([]byte{2}))
	batch := db.NewBatch()
	require.NoError(t, st.Commit(batch))
	assert.Equal(t, 1, batch.Len())
}

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalUnmarshall(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var unmarshaledValue Bytes32

	err := unmarshaledValue.UnmarshalJSON([]byte(originalHex))
	assert.NoError(t, err)

	err = json.Unmarshal([]byte(originalHex), &unmarshaledValue)
	assert.NoError(t, err)

	directMarshallJson, err := unmarshaledValue.MarshalJSON()
	assert.NoError(t, err, "Marshaling should not produce an error")
	assert.Equal(t, originalHex, string(directMarshallJson))

	marshalVal, err := json.Marshal(unmarshaledValue)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalVal))

	marshalPtr, err := json.Marshal(&unmarshaledValue)
	assert.NoError(t, err, "Marshaling should not produce an error")
	assert.Equal(t, originalHex, string(marshalPtr))
}

func TestMarshalField(t *testing.T) {
	v := struct {
		ID  Bytes32  `json:"id"`
		Ref *Bytes32 `json:"ref"`
	}{ID: BytesToBytes32([]byte("master"))}

	data, err := json.Marshal(v)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"0x00000000000000000000000000000000000000000000000000006d6173746572","ref":null}`, string(data))
}

func TestBytesToBytes32(t *testing.T) {
	b := BytesToBytes32([]byte("master"))
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000006d6173746572", b.String())
	assert.False(t, b.IsZero())
	assert.True(t, Bytes32{}.IsZero())

	_, err := ParseBytes32("0x1234")
	assert.Error(t, err)
}

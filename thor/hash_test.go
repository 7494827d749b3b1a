// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func BenchmarkBlake2b(b *testing.B) {
	data := make([]byte, 100)
	for b.Loop() {
		Blake2b(data)
	}
}

func TestBlake2b(t *testing.T) {
	single := Blake2b([]byte("multipledata"))
	multi := Blake2b([]byte("multi"), []byte("ple"), []byte("data"))

	// chunking does not change the digest
	assert.Equal(t, single, multi)
	assert.NotEqual(t, single, Blake2b([]byte("data")))

	h := Blake2bFn(func(w io.Writer) {
		w.Write([]byte("custom writer"))
	})
	assert.Equal(t, Blake2b([]byte("custom writer")), h)
}

func TestKeccak256(t *testing.T) {
	// ERC20 Transfer event signature
	assert.Equal(t,
		"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		Keccak256([]byte("Transfer(address,address,uint256)")).String(),
	)
	assert.Equal(t,
		Keccak256([]byte("Transfer(address,address,uint256)")),
		Keccak256([]byte("Transfer(address,"), []byte("address,uint256)")),
	)
}

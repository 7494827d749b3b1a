// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnits(t *testing.T) {
	assert.Equal(t, big.NewInt(1e18), Units(1))
	assert.Equal(t, "100000000000000000000", Units(100).String())
	assert.Equal(t, 0, Units(0).Sign())
}

func TestContractAddresses(t *testing.T) {
	assert.NotEqual(t, TokenContractAddress, BankContractAddress)
	assert.NotEqual(t, BankContractAddress, ParamsContractAddress)
}

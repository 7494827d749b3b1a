// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"math/big"
)

// Constants of the reference deployment.
const (
	// Decimals of the staking token.
	Decimals uint8 = 18
	// ManagerCount is the fixed size of the bank manager set.
	ManagerCount = 5
	// InitialMintingAmount in whole tokens, minted to the token owner at deployment.
	InitialMintingAmount uint64 = 100
)

// Keys of governance params.
var (
	KeyRewardPerBlock = BytesToBytes32([]byte("reward-per-block"))

	InitialRewardPerBlock = big.NewInt(1e18) // 1 token per block
)

// Addresses of builtin contracts.
var (
	TokenContractAddress  = BytesToAddress([]byte("MyToken"))
	BankContractAddress   = BytesToAddress([]byte("TinyBank"))
	ParamsContractAddress = BytesToAddress([]byte("Params"))
)

// Units converts an amount in whole tokens into the token's smallest unit.
func Units(whole uint64) *big.Int {
	x := new(big.Int).SetUint64(whole)
	return x.Mul(x, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(Decimals)), nil))
}

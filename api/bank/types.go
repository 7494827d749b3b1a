// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/tinybank/tinybank/thor"
)

// Stake is the stake of an account with its reward accrued up to the best
// block and the reward a withdraw in the next block would pay.
type Stake struct {
	Address        thor.Address `json:"address"`
	Staked         string       `json:"staked"`
	AccruedReward  string       `json:"accruedReward"`
	WithdrawReward string       `json:"withdrawReward"`
}

// Summary describes the vault.
type Summary struct {
	Address        thor.Address `json:"address"`
	TotalStaked    string       `json:"totalStaked"`
	RewardPerBlock string       `json:"rewardPerBlock"`
	BestBlock      uint32       `json:"bestBlock"`
}

// Manager is a manager and whether it confirmed in the current round.
type Manager struct {
	Address   thor.Address `json:"address"`
	Confirmed bool         `json:"confirmed"`
}

// Managers is the manager set and the confirmation round status.
type Managers struct {
	Managers  []*Manager `json:"managers"`
	Confirmed int        `json:"confirmed"`
	State     string     `json:"state"`
}

// AmountRequest stakes or withdraws Amount on behalf of the caller.
type AmountRequest struct {
	Caller thor.Address          `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// ConfirmRequest confirms the next reward rate change on behalf of the caller.
type ConfirmRequest struct {
	Caller thor.Address `json:"caller"`
}

// RewardRequest sets the reward per block.
type RewardRequest struct {
	Caller         thor.Address          `json:"caller"`
	RewardPerBlock *math.HexOrDecimal256 `json:"rewardPerBlock"`
}

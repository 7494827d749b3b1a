// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tinybank/tinybank/builtin/params"
	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/thor"
)

// Accrued returns the reward earned over the window [last, current) at rate per step.
// The reward is flat per step and independent of the staked amount.
func Accrued(last, current uint32, rate *big.Int) *big.Int {
	if current <= last || rate == nil {
		return new(big.Int)
	}
	steps := new(big.Int).SetUint64(uint64(current - last))
	return steps.Mul(steps, rate)
}

// Service keeps the reward rate. No rate history is retained, settlement
// always uses the rate in effect at settlement time.
type Service struct {
	params *params.Params
}

func New(params *params.Params) *Service {
	return &Service{params: params}
}

// Rate returns the reward per step.
func (s *Service) Rate() (*big.Int, error) {
	rate, err := s.params.Get(thor.KeyRewardPerBlock)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward rate")
	}
	return rate, nil
}

// SetRate replaces the reward per step.
func (s *Service) SetRate(rate *big.Int) error {
	if !solidity.IsUint256(rate) {
		return reverts.New(reverts.KindInvalidAmount, "invalid reward rate")
	}
	if err := s.params.Set(thor.KeyRewardPerBlock, rate); err != nil {
		return errors.Wrap(err, "failed to set reward rate")
	}
	return nil
}

// Owed returns the reward earned since last at the current rate.
func (s *Service) Owed(last, current uint32) (*big.Int, error) {
	rate, err := s.Rate()
	if err != nil {
		return nil, err
	}
	return Accrued(last, current, rate), nil
}

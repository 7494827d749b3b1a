// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/thor"
)

var (
	slotStakes      = thor.BytesToBytes32([]byte("stakes"))
	slotTotalStaked = thor.BytesToBytes32([]byte("total-staked"))
)

// Stake is the record of one participant.
type Stake struct {
	Amount *big.Int
	// step at which accrual was last settled, meaningless while Amount is zero
	LastAccrualPoint uint32
}

// IsEmpty returns whether nothing is staked.
func (s *Stake) IsEmpty() bool {
	return s.Amount == nil || s.Amount.Sign() == 0
}

// Service manages participant stakes and the aggregate total.
// The total always equals the sum of every stake amount.
type Service struct {
	stakes *solidity.Mapping[thor.Address, *Stake]
	total  *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		stakes: solidity.NewMapping[thor.Address, *Stake](sctx, slotStakes),
		total:  solidity.NewUint256(sctx, slotTotalStaked),
	}
}

// Get returns the stake of addr, a zero record if none.
func (s *Service) Get(addr thor.Address) (*Stake, error) {
	stake, err := s.stakes.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	if stake.Amount == nil {
		stake.Amount = new(big.Int)
	}
	return stake, nil
}

// Total returns the aggregate staked amount.
func (s *Service) Total() (*big.Int, error) {
	return s.total.Get()
}

// Add increases the stake of addr by amount. The accrual window opens at point
// when the record was empty and is otherwise left untouched.
func (s *Service) Add(addr thor.Address, amount *big.Int, point uint32) (*Stake, error) {
	stake, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	if stake.IsEmpty() {
		stake.LastAccrualPoint = point
	}
	stake.Amount = new(big.Int).Add(stake.Amount, amount)

	if err := s.stakes.Set(addr, stake); err != nil {
		return nil, errors.Wrap(err, "failed to set stake")
	}
	if err := s.total.Add(amount); err != nil {
		return nil, errors.Wrap(err, "failed to add total")
	}
	return stake, nil
}

// Remove decreases the stake of addr by amount and restarts the accrual window at point.
// A fully withdrawn record is deleted.
func (s *Service) Remove(addr thor.Address, amount *big.Int, point uint32) (*Stake, error) {
	stake, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	if stake.Amount.Cmp(amount) < 0 {
		return nil, reverts.New(reverts.KindInsufficientFunds, reverts.MsgInsufficientStake)
	}
	stake.Amount = new(big.Int).Sub(stake.Amount, amount)

	if stake.IsEmpty() {
		s.stakes.Delete(addr)
		stake.LastAccrualPoint = 0
	} else {
		stake.LastAccrualPoint = point
		if err := s.stakes.Set(addr, stake); err != nil {
			return nil, errors.Wrap(err, "failed to set stake")
		}
	}
	if err := s.total.Sub(amount); err != nil {
		return nil, errors.Wrap(err, "failed to sub total")
	}
	return stake, nil
}

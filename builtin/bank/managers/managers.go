// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package managers

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/thor"
)

var (
	slotManagers     = thor.BytesToBytes32([]byte("managers"))
	slotConfirmed    = thor.BytesToBytes32([]byte("confirmed"))
	slotConfirmCount = thor.BytesToBytes32([]byte("confirm-count"))

	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// State of the pending confirmation round.
type State uint8

const (
	Empty State = iota
	PartiallyConfirmed
	FullyConfirmed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case PartiallyConfirmed:
		return "PartiallyConfirmed"
	case FullyConfirmed:
		return "FullyConfirmed"
	}
	return "Unknown"
}

// Gate is an unanimous confirmation lock over a fixed manager set.
// Each successful Consume clears every confirmation.
type Gate struct {
	managers  *solidity.Value[[]thor.Address]
	confirmed *solidity.Mapping[thor.Address, bool]
	count     *solidity.Uint256
}

func New(sctx *solidity.Context) *Gate {
	return &Gate{
		managers:  solidity.NewValue[[]thor.Address](sctx, slotManagers),
		confirmed: solidity.NewMapping[thor.Address, bool](sctx, slotConfirmed),
		count:     solidity.NewUint256(sctx, slotConfirmCount),
	}
}

// Initialize stores the manager set. It must be non-empty, without duplicates or zero addresses.
func (g *Gate) Initialize(managers []thor.Address) error {
	if len(managers) == 0 {
		return errors.New("empty manager set")
	}
	seen := make(map[thor.Address]struct{}, len(managers))
	for _, m := range managers {
		if m.IsZero() {
			return errors.New("zero manager address")
		}
		if _, ok := seen[m]; ok {
			return errors.Errorf("duplicated manager %v", m)
		}
		seen[m] = struct{}{}
	}
	existing, err := g.managers.Get()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errors.New("manager set already initialized")
	}
	return g.managers.Set(managers)
}

// Managers returns the manager set in construction order.
func (g *Gate) Managers() ([]thor.Address, error) {
	return g.managers.Get()
}

func (g *Gate) IsManager(addr thor.Address) (bool, error) {
	managers, err := g.managers.Get()
	if err != nil {
		return false, err
	}
	for _, m := range managers {
		if m == addr {
			return true, nil
		}
	}
	return false, nil
}

// Confirmed returns whether addr confirmed in the current round.
func (g *Gate) Confirmed(addr thor.Address) (bool, error) {
	return g.confirmed.Get(addr)
}

// Count returns the number of confirmations in the current round.
func (g *Gate) Count() (int, error) {
	n, err := g.count.Get()
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

func (g *Gate) State() (State, error) {
	managers, err := g.managers.Get()
	if err != nil {
		return Empty, err
	}
	n, err := g.Count()
	if err != nil {
		return Empty, err
	}
	switch {
	case n == 0:
		return Empty, nil
	case n < len(managers):
		return PartiallyConfirmed, nil
	default:
		return FullyConfirmed, nil
	}
}

// Confirm registers the confirmation of caller. Confirming twice in a round counts once.
func (g *Gate) Confirm(caller thor.Address) (State, error) {
	ok, err := g.IsManager(caller)
	if err != nil {
		return Empty, err
	}
	if !ok {
		return Empty, reverts.New(reverts.KindUnauthorized, reverts.MsgNotManager)
	}
	done, err := g.confirmed.Get(caller)
	if err != nil {
		return Empty, err
	}
	if !done {
		if err := g.confirmed.Set(caller, true); err != nil {
			return Empty, err
		}
		if err := g.count.Add(bigOne); err != nil {
			return Empty, err
		}
	}
	return g.State()
}

// Consume requires every manager to have confirmed, then clears the round.
func (g *Gate) Consume() error {
	state, err := g.State()
	if err != nil {
		return err
	}
	if state != FullyConfirmed {
		return reverts.New(reverts.KindConfirmationIncomplete, reverts.MsgNotAllConfirmed)
	}
	managers, err := g.managers.Get()
	if err != nil {
		return err
	}
	for _, m := range managers {
		g.confirmed.Delete(m)
	}
	g.count.Set(bigZero)
	return nil
}

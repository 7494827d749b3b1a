// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/tinybank/tinybank/thor"
)

type contract struct {
	name    string
	Address thor.Address
}

func newContract(name string, addr thor.Address) *contract {
	return &contract{name, addr}
}

// Name returns the contract name.
func (c *contract) Name() string {
	return c.name
}

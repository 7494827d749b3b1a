// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
	"github.com/tinybank/tinybank/tx"
)

// Log collects events emitted by native contracts during execution.
type Log struct {
	events tx.Events
}

// Emit appends an event.
func (l *Log) Emit(ev *tx.Event) {
	l.events = append(l.events, ev)
}

// Events returns all emitted events.
func (l *Log) Events() tx.Events {
	return l.events
}

// Len returns the number of emitted events.
func (l *Log) Len() int {
	return len(l.events)
}

// Truncate drops every event emitted after the first n.
func (l *Log) Truncate(n int) {
	if n < len(l.events) {
		l.events = l.events[:n]
	}
}

// Context binds a native contract to its storage and event log.
type Context struct {
	address thor.Address
	state   *state.State
	log     *Log
}

// NewContext creates a context. Events are dropped when log is nil.
func NewContext(address thor.Address, state *state.State, log *Log) *Context {
	return &Context{
		address: address,
		state:   state,
		log:     log,
	}
}

func (c *Context) Address() thor.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Emit records an event on the shared log.
func (c *Context) Emit(ev *tx.Event) {
	if c.log != nil {
		c.log.Emit(ev)
	}
}

// Atomic runs fn under a state checkpoint. If fn fails, every storage write
// and every event emitted since the checkpoint is discarded.
func (c *Context) Atomic(fn func() error) error {
	checkpoint := c.state.NewCheckpoint()
	mark := 0
	if c.log != nil {
		mark = c.log.Len()
	}
	if err := fn(); err != nil {
		c.state.RevertTo(checkpoint)
		if c.log != nil {
			c.log.Truncate(mark)
		}
		return err
	}
	return nil
}

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const delayBuffer = 5 * time.Second

// BlockProgress is the latest block seen and when it was first seen.
type BlockProgress struct {
	Number    uint32     `json:"number"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy       bool           `json:"healthy"`
	BlockProgress *BlockProgress `json:"blockProgress"`
}

// BestNumberer reports the best block number.
type BestNumberer interface {
	BestNumber() uint32
}

// Health watches the best block. With a block interval set, the node is
// healthy only while blocks keep being sealed within the interval plus a buffer.
type Health struct {
	lock          sync.RWMutex
	clock         clockwork.Clock
	chain         BestNumberer
	blockInterval time.Duration
	best          uint32
	newBestBlock  time.Time
}

func New(chain BestNumberer, clock clockwork.Clock, blockInterval time.Duration) *Health {
	return &Health{
		clock:         clock,
		chain:         chain,
		blockInterval: blockInterval,
		best:          chain.BestNumber(),
		newBestBlock:  clock.Now(),
	}
}

// Run polls the best block every second until ctx is done.
func (h *Health) Run(ctx context.Context) {
	ticker := h.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			h.observe(h.chain.BestNumber())
		}
	}
}

func (h *Health) observe(best uint32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if best != h.best {
		h.best = best
		h.newBestBlock = h.clock.Now()
	}
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	seen := h.newBestBlock
	healthy := h.blockInterval == 0 || h.clock.Since(seen) <= h.blockInterval+delayBuffer
	return &Status{
		Healthy: healthy,
		BlockProgress: &BlockProgress{
			Number:    h.best,
			Timestamp: &seen,
		},
	}
}

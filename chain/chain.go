// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/tinybank/tinybank/builtin"
	"github.com/tinybank/tinybank/builtin/bank"
	"github.com/tinybank/tinybank/builtin/params"
	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/builtin/solidity"
	"github.com/tinybank/tinybank/builtin/token"
	"github.com/tinybank/tinybank/kv"
	"github.com/tinybank/tinybank/log"
	"github.com/tinybank/tinybank/state"
	"github.com/tinybank/tinybank/thor"
	"github.com/tinybank/tinybank/tx"
)

const receiptCacheSize = 512

var logger = log.WithContext("pkg", "chain")

var errNotFound = errors.New("not found")

// IsNotFound returns whether an error indicates the receipt is not found.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

// Genesis deploys the builtin contracts in block 0.
type Genesis interface {
	ID() thor.Bytes32
	Deploy(env *Env) error
}

// Env is the view of the state an operation runs against.
type Env struct {
	chain  *Chain
	state  *state.State
	events *solidity.Log
}

func (e *Env) State() *state.State { return e.state }

func (e *Env) Token() *token.Token {
	return builtin.Token.Native(e.state, e.events)
}

func (e *Env) Bank() *bank.Bank {
	return builtin.Bank.Native(e.state, e.events, e.chain)
}

func (e *Env) Params() *params.Params {
	return builtin.Params.Native(e.state)
}

// Chain is the serializing host of the builtin contracts. Every operation runs
// alone in its own block and either commits entirely or leaves state unchanged.
type Chain struct {
	db        kv.Store
	genesisID thor.Bytes32

	mu       sync.Mutex
	state    *state.State
	best     uint32
	current  atomic.Uint32
	receipts *cache
}

// New opens the chain stored in db, deploying gen into block 0 if db is empty.
func New(db kv.Store, gen Genesis) (*Chain, error) {
	c := &Chain{
		db:        db,
		genesisID: gen.ID(),
		state:     state.New(db),
		receipts:  newCache(receiptCacheSize),
	}

	best, ok, err := loadBestNumber(db)
	if err != nil {
		return nil, errors.Wrap(err, "load best block")
	}
	if ok {
		id, err := loadGenesisID(db)
		if err != nil {
			return nil, errors.Wrap(err, "load genesis id")
		}
		if id != c.genesisID {
			return nil, errors.Errorf("genesis mismatch: stored %v, configured %v", id, c.genesisID)
		}
		c.best = best
		c.current.Store(best)
		logger.Info("chain loaded", "best", best, "genesis", id.AbbrevString())
		return c, nil
	}

	if _, _, err := c.execute(thor.Address{}, "genesis", 0, gen.Deploy); err != nil {
		return nil, err
	}
	logger.Info("genesis deployed", "genesis", c.genesisID.AbbrevString())
	return c, nil
}

// GenesisID returns the id of the deployed genesis.
func (c *Chain) GenesisID() thor.Bytes32 {
	return c.genesisID
}

// Number returns the number of the block being executed, or of the best block
// outside execution. It is the step counter rewards accrue on.
func (c *Chain) Number() uint32 {
	return c.current.Load()
}

// BestNumber returns the number of the last committed block.
func (c *Chain) BestNumber() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.best
}

// Execute runs fn as the only operation of a new block on behalf of origin.
// A revert still produces a block with a reverted receipt, and the revert error is returned.
// Other errors discard the block.
func (c *Chain) Execute(origin thor.Address, op string, fn func(env *Env) error) (*tx.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	receipt, revertErr, err := c.execute(origin, op, c.best+1, fn)
	if err != nil {
		return nil, err
	}
	return receipt, revertErr
}

// View runs fn against the committed state. Writes made by fn are discarded.
func (c *Chain) View(fn func(env *Env) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	checkpoint := c.state.NewCheckpoint()
	defer c.state.RevertTo(checkpoint)
	return fn(&Env{chain: c, state: c.state})
}

func (c *Chain) execute(origin thor.Address, op string, number uint32, fn func(env *Env) error) (receipt *tx.Receipt, revertErr error, err error) {
	c.current.Store(number)
	defer func() { c.current.Store(c.best) }()

	events := &solidity.Log{}
	env := &Env{chain: c, state: c.state, events: events}
	receipt = &tx.Receipt{BlockNumber: number, Origin: origin, Op: op}

	checkpoint := c.state.NewCheckpoint()
	if opErr := fn(env); opErr != nil {
		c.state.RevertTo(checkpoint)
		// genesis must not revert
		if !reverts.IsRevertErr(opErr) || number == 0 {
			return nil, nil, errors.Wrap(opErr, op)
		}
		revertErr = opErr
		receipt.Reverted = true
		receipt.Reason = opErr.Error()
		receipt.RevertKind = uint8(reverts.KindOf(opErr))
	} else {
		receipt.Events = events.Events()
	}

	batch := c.db.NewBatch()
	if err := c.state.Commit(batch); err != nil {
		return nil, nil, errors.Wrap(err, "commit state")
	}
	if err := saveReceipt(batch, receipt); err != nil {
		return nil, nil, errors.Wrap(err, "save receipt")
	}
	if number == 0 {
		if err := saveGenesisID(batch, c.genesisID); err != nil {
			return nil, nil, errors.Wrap(err, "save genesis id")
		}
	}
	if err := saveBestNumber(batch, number); err != nil {
		return nil, nil, errors.Wrap(err, "save best block")
	}
	if err := batch.Write(); err != nil {
		return nil, nil, errors.Wrap(err, "write block")
	}

	c.best = number
	c.receipts.Add(number, receipt)

	metricBestBlock().Set(int64(number))
	metricBlockCount().AddWithLabel(1, map[string]string{"op": op, "reverted": strconv.FormatBool(receipt.Reverted)})
	logger.Debug("block committed", "number", number, "op", op, "origin", origin, "reverted", receipt.Reverted)
	return receipt, revertErr, nil
}

// Receipt returns the receipt of the block with the given number.
func (c *Chain) Receipt(number uint32) (*tx.Receipt, error) {
	value, loaded, err := c.receipts.GetOrLoad(number, func() (any, error) {
		receipt, err := loadReceipt(c.db, number)
		if err != nil {
			if c.db.IsNotFound(err) {
				return nil, errNotFound
			}
			return nil, err
		}
		return receipt, nil
	})
	if err != nil {
		return nil, err
	}
	event := "hit"
	if loaded {
		event = "miss"
	}
	metricReceiptCacheHit().AddWithLabel(1, map[string]string{"event": event})
	return value.(*tx.Receipt), nil
}

// Run seals an empty block every interval until ctx is done, so that rewards
// keep accruing while no operations are submitted.
func (c *Chain) Run(ctx context.Context, clock clockwork.Clock, interval time.Duration) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if _, err := c.Execute(thor.Address{}, "seal", func(*Env) error { return nil }); err != nil {
				logger.Warn("failed to seal block", "err", err)
			}
		}
	}
}

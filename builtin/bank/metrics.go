// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"math/big"

	"github.com/tinybank/tinybank/builtin/reverts"
	"github.com/tinybank/tinybank/metrics"
	"github.com/tinybank/tinybank/thor"
)

var (
	metricOpsCount    = metrics.LazyLoadCounterVec("bank_ops_count", []string{"op", "status"})
	metricTotalStaked = metrics.LazyLoadGauge("bank_total_staked_tokens")
)

func (b *Bank) record(op string, err error) {
	status := "success"
	switch {
	case err == nil:
	case reverts.IsRevertErr(err):
		status = "reverted"
		logger.Debug("operation rejected", "op", op, "err", err)
	default:
		status = "failed"
		logger.Warn("operation failed", "op", op, "err", err)
	}
	metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "status": status})

	if err == nil && (op == "stake" || op == "withdraw") {
		if total, err := b.stakesService.Total(); err == nil {
			metricTotalStaked().Set(new(big.Int).Quo(total, thor.Units(1)).Int64())
		}
	}
}

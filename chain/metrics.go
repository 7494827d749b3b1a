// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/tinybank/tinybank/metrics"

var (
	metricBestBlock       = metrics.LazyLoadGauge("chain_best_block")
	metricBlockCount      = metrics.LazyLoadCounterVec("chain_block_count", []string{"op", "reverted"})
	metricReceiptCacheHit = metrics.LazyLoadCounterVec("chain_receipt_cache_count", []string{"event"})
)

// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage of the ledger.
// It follows the flow as bellow:
//
//	       o
//	       |
//	[ revertable state ]
//	       |
//	[ stacked map ] -> [ journal ] -> [ playback(commit) ] -> [ kv batch ]
//	       |
//	[ committed kv ]
//
// Every slot is addressed by (contract address, key) and holds an rlp value.
package state

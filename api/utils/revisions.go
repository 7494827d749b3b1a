// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

const revBest int64 = -1

// Revision selects a block, either by number or the best one.
type Revision struct {
	val int64
}

// IsBest reports whether the revision points to the best block.
func (rev *Revision) IsBest() bool {
	return rev.val == revBest
}

// ParseRevision parses a path or query parameter into a block number.
func ParseRevision(revision string) (*Revision, error) {
	if revision == "" || revision == "best" {
		return &Revision{revBest}, nil
	}
	n, err := strconv.ParseUint(revision, 0, 0)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid block number")
	}
	if n > math.MaxUint32 {
		return nil, errors.New("block number out of range")
	}
	return &Revision{int64(n)}, nil
}

// Number resolves the revision against the given best block number.
func (rev *Revision) Number(best uint32) uint32 {
	if rev.IsBest() {
		return best
	}
	return uint32(rev.val)
}

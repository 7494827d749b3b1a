// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// Kind classifies a revert. Kinds are comparable with errors.Is.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindInsufficientFunds
	KindConfirmationIncomplete
	KindInvalidAmount
)

func (k Kind) Error() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindInsufficientFunds:
		return "insufficient funds"
	case KindConfirmationIncomplete:
		return "confirmation incomplete"
	case KindInvalidAmount:
		return "invalid amount"
	}
	return "revert"
}

// Messages reported by the builtin contracts.
const (
	MsgInsufficientBalance   = "insufficient balance"
	MsgInsufficientAllowance = "insufficient allowance"
	MsgInsufficientStake     = "insufficient stake"
	MsgNotManager            = "You are not a managers"
	MsgNotAllConfirmed       = "Not all managers confirmed yet"
	MsgInvalidAmount         = "amount must be positive"
	MsgNotOwner              = "caller is not the owner"
	MsgNotMinter             = "caller is not the minter"
)

// ErrRevert is a require() failure of a builtin contract. The operation that
// returned it left no state behind.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func (e *ErrRevert) Unwrap() error {
	return e.kind
}

// Bytes returns the revert reason abi-encoded as Error(string).
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}

	// 4-byte selector for Error(string)
	selector, _ := hex.DecodeString("08c379a0")
	msgBytes := []byte(e.message)
	msgLen := uint64(len(msgBytes))

	// selector + offset (32 bytes) + length (32 bytes) + data (padded to 32)
	encoded := make([]byte, 0, 4+32+32+((len(msgBytes)+31)/32)*32)
	encoded = append(encoded, selector...)

	offset := make([]byte, 32)
	binary.BigEndian.PutUint64(offset[24:], 32)
	encoded = append(encoded, offset...)

	length := make([]byte, 32)
	binary.BigEndian.PutUint64(length[24:], msgLen)
	encoded = append(encoded, length...)

	data := make([]byte, ((len(msgBytes)+31)/32)*32)
	copy(data, msgBytes)
	encoded = append(encoded, data...)

	return encoded
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}

// KindOf returns the kind of a revert error, KindUnknown for anything else.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) && ve != nil {
		return ve.kind
	}
	return KindUnknown
}

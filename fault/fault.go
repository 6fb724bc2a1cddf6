// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type CapacityError GenericError
type ExistsError GenericError
type FundsError GenericError
type HeightError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PeerError GenericError
type PinStateError GenericError
type ProcessError GenericError
type SamplesError GenericError

// common errors - keep in alphabetic order
var (
	AccountNotFound          = NotFoundError("account not found")
	AlreadyInitialised       = ExistsError("already initialised")
	AlreadyPinned            = PinStateError("content is already pinned")
	AmountIsZero             = InvalidError("amount is zero")
	AmountNotZero            = InvalidError("amount must be zero")
	BadPeerResponse          = PeerError("received bad response from storage peer")
	BytesIsZero              = InvalidError("bytes is zero")
	ConfigurationNotTable    = InvalidError("configuration must return a table")
	DatabaseIsNotSet         = ProcessError("database is not set")
	FieldOverflow            = ProcessError("merge would overflow a field")
	InsufficientCapacity     = CapacityError("not enough storage in the cluster available")
	InsufficientFunds        = FundsError("insufficient funds")
	InsufficientLockedBytes  = CapacityError("insufficient locked bytes")
	InsufficientSamples      = SamplesError("not enough stats available")
	InvalidAsset             = InvalidError("invalid asset")
	InvalidContentId         = InvalidError("invalid content identifier")
	InvalidCount             = InvalidError("invalid count")
	InvalidCursor            = InvalidError("invalid cursor")
	InvalidFee               = InvalidError("fee does not match the fee schedule")
	InvalidHeight            = HeightError("invalid block height")
	InvalidLockSettings      = InvalidError("invalid lock settings")
	InvalidParameter         = InvalidError("invalid parameter")
	InvalidPeerAddress       = InvalidError("invalid storage peer address")
	InvalidPortNumber        = InvalidError("invalid port number")
	InvalidRecipient         = InvalidError("recipient must not be set")
	InvalidSender            = InvalidError("invalid sender")
	InvalidSnapshot          = InvalidError("invalid cluster snapshot")
	InvalidTransactionType   = InvalidError("not a lock, unlock, pin or unpin transaction")
	LockBytesTooLarge        = InvalidError("bytes to lock exceed the calculated bytes")
	LockedExceedsBalance     = ProcessError("locked balance would exceed balance")
	LockedBytesIsZero        = FundsError("locked bytes is zero")
	LockedBalanceIsZero      = FundsError("locked balance is zero")
	MissingParameter         = InvalidError("missing parameter")
	MilestoneTableEmpty      = InvalidError("milestone table is empty")
	MilestoneTableNotOrdered = InvalidError("milestone table is not in ascending height order")
	MilestoneTableStart      = InvalidError("first milestone must be at height 1")
	NegativeBalance          = ProcessError("merge would produce a negative value")
	NoStoragePeers           = PeerError("not a valid storage peer")
	NotEnoughRecentStats     = SamplesError("not enough recent stats available")
	NotPinned                = PinStateError("content is not pinned")
	NotReady                 = InvalidError("transaction lacks required signatures")
	ParentMismatch           = InvalidError("parent transaction belongs to a different sender")
	ParentNotFound           = NotFoundError("parent transaction not found")
	PeerUnreachable          = PeerError("storage peer unreachable")
	PinPending               = PinStateError("content has a pooled pin or unpin")
	StaleTimestamp           = InvalidError("transaction timestamp precedes most recent pin record")
	StatsNotFound            = NotFoundError("block stats not found")
	StatsTooOld              = SamplesError("block stats are too old")
	TransactionAlreadyExists = ExistsError("transaction already exists")
	TransactionNotFound      = NotFoundError("transaction not found")
	UnlockExceedsLocked      = FundsError("amount to unlock cannot exceed locked balance")
	UnlockBytesExceedsLocked = FundsError("unlock bytes exceed locked bytes")
	UnlockWouldReleasePinned = CapacityError("cannot unlock bytes that are pinned")
	UnpinBytesMismatch       = InvalidError("unpin bytes do not match pinned bytes")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e CapacityError) Error() string { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e FundsError) Error() string    { return string(e) }
func (e HeightError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e PeerError) Error() string     { return string(e) }
func (e PinStateError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e SamplesError) Error() string  { return string(e) }

// determine the class of an error
func IsErrCapacity(e error) bool { var x CapacityError; return errors.As(e, &x) }
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrFunds(e error) bool    { var x FundsError; return errors.As(e, &x) }
func IsErrHeight(e error) bool   { var x HeightError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrPeer(e error) bool     { var x PeerError; return errors.As(e, &x) }
func IsErrPinState(e error) bool { var x PinStateError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrSamples(e error) bool  { var x SamplesError; return errors.As(e, &x) }

// DeficitError - capacity failure carrying the number of missing bytes
type DeficitError struct {
	Deficit uint64
}

// CapacityDeficit - create a capacity error for a given shortfall
func CapacityDeficit(deficit uint64) error {
	return &DeficitError{Deficit: deficit}
}

func (e *DeficitError) Error() string {
	return fmt.Sprintf("%s: %d, please lock a smaller amount or try again later", InsufficientCapacity, e.Deficit)
}

// Unwrap - so errors.Is(err, InsufficientCapacity) holds
func (e *DeficitError) Unwrap() error {
	return InsufficientCapacity
}

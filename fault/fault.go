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
type (
	ExistsError     GenericError
	InvalidError    GenericError
	LengthError     GenericError
	NotFoundError   GenericError
	PermissionError GenericError
	ProcessError    GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised          = ProcessError("already initialised")
	AmountConservationViolated  = InvalidError("amount conservation violated")
	AmountOverflow              = InvalidError("amount overflow")
	ArrayLengthMismatch         = LengthError("array length mismatch")
	AssetAlreadyExists          = ExistsError("asset already exists")
	AssetAlreadyUngrouped       = ProcessError("asset already ungrouped")
	AssetNotActive              = ProcessError("asset not active")
	AssetNotFound               = NotFoundError("asset not found")
	AssetNotGrouped             = ProcessError("asset not grouped")
	BatchTooLarge               = LengthError("batch too large")
	DatabaseIsNotSet            = ProcessError("database is not set")
	DuplicateAssetsInGroup      = InvalidError("duplicate assets in group")
	EmptyDataHashes             = LengthError("empty data hashes")
	EmptyLocation               = InvalidError("empty location")
	EmptyRequest                = InvalidError("empty request")
	GroupAssetAlreadyExists     = ExistsError("group asset already exists")
	GroupedAssetNotFound        = NotFoundError("grouped asset not found")
	IdentifierCollision         = ExistsError("identifier collision")
	InsufficientAssetsToGroup   = LengthError("insufficient assets to group")
	InsufficientSplitParts      = LengthError("insufficient split parts")
	InvalidCount                = InvalidError("invalid count")
	InvalidCursor               = InvalidError("invalid cursor")
	InvalidGroupAmount          = InvalidError("invalid group amount")
	InvalidId                   = InvalidError("invalid id")
	InvalidIpAddress            = InvalidError("invalid IP address")
	InvalidKeyFile              = InvalidError("invalid key file")
	InvalidNamespace            = InvalidError("invalid namespace")
	InvalidPortNumber           = InvalidError("invalid port number")
	InvalidSplitAmount          = InvalidError("invalid split amount")
	InvalidStructPointer        = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists        = ExistsError("key file already exists")
	MissingParameters           = InvalidError("missing parameters")
	MixedBatchNotAllowed        = InvalidError("mixed batch not allowed")
	MixedOwnershipNotAllowed    = PermissionError("mixed ownership not allowed")
	NotAssetId                  = InvalidError("not asset id")
	NotAssetOwner               = PermissionError("not asset owner")
	NotEventRecord              = ProcessError("not event record")
	NotInitialised              = ProcessError("not initialised")
	NotLineageRecord            = ProcessError("not lineage record")
	RateLimiting                = InvalidError("rate limiting")
	ReentrantCall               = ProcessError("reentrant call")
	RouterPaused                = ProcessError("router paused")
	SelfReferenceInGroup        = InvalidError("self reference in group")
	SplitAmountTooSmall         = InvalidError("split amount too small")
	TooManyAssetsToGroup        = LengthError("too many assets to group")
	TooManySplitParts           = LengthError("too many split parts")
	TransactionInUse            = ProcessError("transaction already in use")
	TransactionValidationFailed = PermissionError("transaction validation failed")
	TransferToSameOwner         = InvalidError("transfer to same owner")
	TransformationChainTooDeep  = LengthError("transformation chain too deep")
	UnauthorizedAccess          = PermissionError("unauthorized access")
	UnknownAction               = InvalidError("unknown action")
	UnsupportedOperation        = InvalidError("unsupported operation")
)

// the error interface methods
func (e GenericError) Error() string    { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// DetailedError - a fault instance carrying the values that caused it
type DetailedError struct {
	err    error
	detail string
}

// Detail - attach offending values to one of the error instances
func Detail(err error, format string, arguments ...interface{}) error {
	return &DetailedError{
		err:    err,
		detail: fmt.Sprintf(format, arguments...),
	}
}

// Error - base message followed by the detail
func (e *DetailedError) Error() string {
	return e.err.Error() + ": " + e.detail
}

// Unwrap - the original instance, so errors.Is works
func (e *DetailedError) Unwrap() error { return e.err }

// Detail - only the attached values
func (e *DetailedError) Detail() string { return e.detail }

// determine the class of an error
func IsErrExists(e error) bool     { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool    { var t InvalidError; return errors.As(e, &t) }
func IsErrLength(e error) bool     { var t LengthError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool   { var t NotFoundError; return errors.As(e, &t) }
func IsErrPermission(e error) bool { var t PermissionError; return errors.As(e, &t) }
func IsErrProcess(e error) bool    { var t ProcessError; return errors.As(e, &t) }

// Class - short name of the class of an error, "none" for nil
func Class(e error) string {
	switch {
	case nil == e:
		return "none"
	case IsErrExists(e):
		return "exists"
	case IsErrInvalid(e):
		return "invalid"
	case IsErrLength(e):
		return "length"
	case IsErrNotFound(e):
		return "not_found"
	case IsErrPermission(e):
		return "permission"
	case IsErrProcess(e):
		return "process"
	default:
		return "other"
	}
}

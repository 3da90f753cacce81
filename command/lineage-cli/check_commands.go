// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"net"
	"strconv"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
)

var (
	ErrRequiredAssetId   = fault.InvalidError("asset id is required")
	ErrRequiredCaller    = fault.InvalidError("caller is required")
	ErrRequiredConnect   = fault.InvalidError("connect is required")
	ErrRequiredFileName  = fault.InvalidError("file name is required")
	ErrRequiredNamespace = fault.InvalidError("namespace is required")
	ErrRequiredProcessId = fault.InvalidError("process id is required")
)

// connect is required
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", ErrRequiredConnect
	}
	if _, _, err := net.SplitHostPort(connect); nil != err {
		return "", err
	}
	return connect, nil
}

// namespace is required for all asset commands
func checkNamespace(ns asset.Namespace) (asset.Namespace, error) {
	if "" == ns {
		return "", ErrRequiredNamespace
	}
	if err := ns.Validate(); nil != err {
		return "", err
	}
	return ns, nil
}

// caller is required for submissions
func checkCaller(caller string) (string, error) {
	if "" == caller {
		return "", ErrRequiredCaller
	}
	return caller, nil
}

// process id is required for submissions
func checkProcessId(processId string) (string, error) {
	if "" == processId {
		return "", ErrRequiredProcessId
	}
	return processId, nil
}

// check for non-blank file name
func checkFileName(fileName string) (string, error) {
	if "" == fileName {
		return "", ErrRequiredFileName
	}
	return fileName, nil
}

// asset id is required, hex form or a short readable name
func checkAssetId(s string) (asset.Identifier, error) {
	if "" == s {
		return asset.Identifier{}, ErrRequiredAssetId
	}
	return parseAssetId(s)
}

// blank selects the zero id, which the daemon treats as unset
func checkOptionalAssetId(s string) (asset.Identifier, error) {
	if "" == s {
		return asset.Identifier{}, nil
	}
	return parseAssetId(s)
}

func checkAssetIds(list []string) ([]asset.Identifier, error) {
	ids := make([]asset.Identifier, 0, len(list))
	for _, s := range list {
		id, err := checkAssetId(s)
		if nil != err {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseAssetId(s string) (asset.Identifier, error) {
	if hex.EncodedLen(asset.IdentifierLength) == len(s) {
		return asset.IdentifierFromString(s)
	}
	return asset.IdentifierFromName(s)
}

// amounts are decimal, zero is allowed
func checkAmount(s string) (uint64, error) {
	if "" == s {
		return 0, nil
	}
	amount, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return 0, fault.Detail(fault.InvalidCount, "amount: %q", s)
	}
	return amount, nil
}

func checkAmounts(list []string) ([]uint64, error) {
	amounts := make([]uint64, 0, len(list))
	for _, s := range list {
		amount, err := checkAmount(s)
		if nil != err {
			return nil, err
		}
		amounts = append(amounts, amount)
	}
	return amounts, nil
}

// count must be positive
func checkRecordCount(s string) (int, error) {
	count, err := strconv.Atoi(s)
	if nil != err || count <= 0 {
		return 0, fault.Detail(fault.InvalidCount, "count: %q", s)
	}
	return count, nil
}

func checkStart(s string) (uint64, error) {
	start, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return 0, fault.Detail(fault.InvalidCount, "start: %q", s)
	}
	return start, nil
}

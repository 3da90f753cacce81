// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=membership.go -package=mocks github.com/bitmark-inc/lineaged/lifecycle Membership
//go:generate mockgen -destination=processes.go -package=mocks github.com/bitmark-inc/lineaged/router Processes
//go:generate mockgen -destination=rpc.go -package=mocks github.com/bitmark-inc/lineaged/rpc/transaction Submitter

package mocks

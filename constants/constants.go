// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

// default lifecycle limits, all can be overridden in the configuration
const (
	MaximumTransformationDepth = 10  // links followed from an asset back to its origin
	MinimumSplitAmount         = 1   // smallest amount a split part may carry
	MaximumSplitParts          = 100 // parts produced by one split
	MinimumGroupSize           = 2   // components in one composite
	MaximumGroupSize           = 50  // ...
	MaximumBatchSize           = 20  // requests in one batch submission
)

// identifier generation
const (
	MaximumIdentifierAttempts = 8 // retries when a generated id is already taken
)

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - token bucket limiting shared by the RPC services
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/lineaged/fault"
)

// MaximumDelay - a caller is never held longer than this, a request
// that would wait longer is refused and its tokens returned
const MaximumDelay = 2 * time.Second

// Limit - limiting for a single request
func Limit(limiter *rate.Limiter) error {
	return reserve(limiter, 1)
}

// LimitN - limiting for a request covering count items
//
// a count outside 1..maximumCount is charged as one request and
// rejected
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count <= 0 || count > maximumCount {
		if err := reserve(limiter, 1); nil != err {
			return err
		}
		return fault.Detail(fault.InvalidCount, "count: %d  maximum: %d", count, maximumCount)
	}
	return reserve(limiter, count)
}

func reserve(limiter *rate.Limiter, n int) error {
	r := limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.RateLimiting
	}
	delay := r.Delay()
	if delay > MaximumDelay {
		r.Cancel()
		return fault.RateLimiting
	}
	time.Sleep(delay)
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Staging - values written by the transaction in progress, keyed by
// the full prefixed database key
type Staging interface {
	Get(string) ([]byte, bool)
	Set(string, []byte)
	Count() int
	Clear()
}

type stagingCache struct {
	items *cache.Cache
}

// nothing expires: values live until commit or abort
func newStaging() Staging {
	return &stagingCache{
		items: cache.New(cache.NoExpiration, 0),
	}
}

func (s *stagingCache) Get(key string) ([]byte, bool) {
	obj, found := s.items.Get(key)
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

// the value is copied so later changes to the caller's buffer are
// not seen by reads within the transaction
func (s *stagingCache) Set(key string, value []byte) {
	staged := make([]byte, len(value))
	copy(staged, value)
	s.items.Set(key, staged, cache.NoExpiration)
}

func (s *stagingCache) Count() int {
	return s.items.ItemCount()
}

func (s *stagingCache) Clear() {
	s.items.Flush()
}

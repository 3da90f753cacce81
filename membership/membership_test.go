// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/membership"
)

func TestDirectory(t *testing.T) {
	d, err := membership.NewFromConfiguration([]membership.NamespaceConfiguration{
		{Name: "farm", Members: []string{"grower", "packer"}},
		{Name: "port", Members: []string{"shipper"}},
	})
	require.NoError(t, err, "configure")

	assert.True(t, d.IsMember("farm", "grower"), "grower")
	assert.False(t, d.IsMember("port", "grower"), "grower in port")
	assert.False(t, d.IsMember("market", "grower"), "unknown namespace")

	d.Remove("farm", "grower")
	assert.False(t, d.IsMember("farm", "grower"), "after remove")
	assert.True(t, d.IsMember("farm", "packer"), "others kept")

	assert.Equal(t, []asset.Namespace{"farm", "port"}, d.Namespaces(), "namespaces")
}

func TestDirectoryRejectsBlanks(t *testing.T) {
	d := membership.New()
	assert.Equal(t, fault.InvalidNamespace, d.Add(" ", "someone"), "blank namespace")

	err := d.Add("farm", "grower", "")
	assert.True(t, errors.Is(err, fault.MissingParameters), "blank member: %v", err)
}

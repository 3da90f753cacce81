// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package router_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/lineaged/asset"
	"github.com/bitmark-inc/lineaged/constants"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/lineaged/fixtures"
	"github.com/bitmark-inc/lineaged/lineage"
	"github.com/bitmark-inc/lineaged/metrics"
	"github.com/bitmark-inc/lineaged/mocks"
	"github.com/bitmark-inc/lineaged/process"
	"github.com/bitmark-inc/lineaged/router"
	"github.com/bitmark-inc/logger"
)

func TestSubmitCreateThenTransfer(t *testing.T) {
	tr := setupRouter(t)
	a := tr.create(t, "A", "O1", 100)

	tr.recorder.Reset()
	req := request(process.TransferAsset, "O1")
	req.AssetId = a
	req.NewOwner = "O2"
	req.Location = "L2"
	affected, err := tr.router.Submit(req)
	require.NoError(t, err, "transfer")
	assert.Equal(t, []asset.Identifier{a}, affected, "affected")

	got := tr.get(t, a)
	assert.Equal(t, "O2", got.Owner, "owner")
	assert.Equal(t, "L2", got.Location, "location")
	assert.Equal(t, uint64(100), got.Amount, "zero amount on the wire keeps the amount")

	custody := tr.recorder.Events(lineage.AssetCustodyKind)
	require.Equal(t, 1, len(custody), "custody events")
	c := custody[0].(*lineage.AssetCustodyChanged)
	assert.Equal(t, "O1", c.From, "from")
	assert.Equal(t, "O2", c.To, "to")

	executed := tr.recorder.Events(lineage.OperationKind)
	require.Equal(t, 1, len(executed), "operation executed")
	op := executed[0].(*lineage.OperationExecuted)
	assert.Equal(t, asset.Transfer, op.Operation, "operation")
	assert.Equal(t, "ship", op.ProcessId, "process")
	assert.Equal(t, "O1", op.Caller, "caller")
	assert.Equal(t, []asset.Identifier{a}, op.AssetIds, "asset ids")

	modified := tr.recorder.Events(lineage.AssetModifiedKind)
	require.Equal(t, 1, len(modified), "asset modified")
	assert.Equal(t, a, modified[0].(*lineage.AssetModified).AssetId, "modified id")
}

func TestSubmitEveryAction(t *testing.T) {
	tr := setupRouter(t)
	a := tr.create(t, "A", "O", 100)

	update := request(process.UpdateAsset, "O")
	update.AssetId = a
	update.Location = "silo"
	update.Amount = 90
	update.DataHashes = []string{"moisture"}
	_, err := tr.router.Submit(update)
	require.NoError(t, err, "update")
	assert.Equal(t, uint64(90), tr.get(t, a).Amount, "updated amount")

	split := request(process.SplitAsset, "O")
	split.AssetId = a
	split.Amounts = []uint64{30, 60}
	split.Location = "silo"
	split.DataHashes = []string{"part-1", "part-2"}
	parts, err := tr.router.Submit(split)
	require.NoError(t, err, "split")
	require.Equal(t, 3, len(parts), "children then parent")
	assert.Equal(t, a, parts[2], "parent last")
	assert.False(t, tr.get(t, a).IsActive(), "split parent retired")

	transform := request(process.TransformAsset, "O")
	transform.AssetId = parts[0]
	transform.Location = "mill"
	milled, err := tr.router.Submit(transform)
	require.NoError(t, err, "transform")
	require.Equal(t, 2, len(milled), "new then old")
	flour := milled[0]
	assert.Equal(t, uint64(30), tr.get(t, flour).Amount, "zero amount inherits")
	assert.Equal(t, parts[0], tr.get(t, flour).ParentAssetId, "parent")

	group := request(process.GroupAsset, "O")
	group.ComponentIds = []asset.Identifier{flour, parts[1]}
	group.Location = "dock"
	group.DataHashes = []string{"manifest"}
	grouped, err := tr.router.Submit(group)
	require.NoError(t, err, "group")
	pallet := grouped[0]
	assert.Equal(t, uint64(90), tr.get(t, pallet).Amount, "composite amount")

	ungroup := request(process.UngroupAsset, "O")
	ungroup.AssetId = pallet
	_, err = tr.router.Submit(ungroup)
	require.NoError(t, err, "ungroup")
	assert.True(t, tr.get(t, flour).IsActive(), "component reactivated")

	inactivate := request(process.InactivateAsset, "O")
	inactivate.AssetId = flour
	inactivate.Location = "bakery"
	_, err = tr.router.Submit(inactivate)
	require.NoError(t, err, "inactivate")
	assert.False(t, tr.get(t, flour).IsActive(), "consumed")

	executed := tr.recorder.Events(lineage.OperationKind)
	assert.Equal(t, 7, len(executed), "one aggregate event per submission")
}

// zero on the wire cannot express an explicit zero amount for update
// and transform, it always means unchanged
func TestZeroAmountMeansUnchanged(t *testing.T) {
	tr := setupRouter(t)
	a := tr.create(t, "A", "O", 100)

	update := request(process.UpdateAsset, "O")
	update.AssetId = a
	update.Location = "silo"
	update.Amount = 0
	_, err := tr.router.Submit(update)
	require.NoError(t, err, "update")
	assert.Equal(t, uint64(100), tr.get(t, a).Amount, "zero did not clear the amount")

	transform := request(process.TransformAsset, "O")
	transform.AssetId = a
	transform.Location = "mill"
	transform.Amount = 0
	affected, err := tr.router.Submit(transform)
	require.NoError(t, err, "transform")
	assert.Equal(t, uint64(100), tr.get(t, affected[0]).Amount, "zero inherited the amount")
}

func TestSubmitSplitConservationViolation(t *testing.T) {
	tr := setupRouter(t)
	a := tr.create(t, "A", "O1", 100)
	tr.recorder.Reset()

	req := request(process.SplitAsset, "O1")
	req.AssetId = a
	req.Amounts = []uint64{40, 50}
	req.Location = "silo"
	req.DataHashes = []string{"h1", "h2"}
	_, err := tr.router.Submit(req)
	assert.True(t, errors.Is(err, fault.AmountConservationViolated), "error: %v", err)
	assert.True(t, tr.get(t, a).IsActive(), "still active")
	assert.Equal(t, 0, len(tr.recorder.Records()), "nothing emitted")
}

func TestSubmitGroupUngroupRoundTrip(t *testing.T) {
	tr := setupRouter(t)
	a := tr.create(t, "A", "O", 40)
	b := tr.create(t, "B", "O", 60)

	group := request(process.GroupAsset, "O")
	group.AssetId = fixtures.Id("G")
	group.ComponentIds = []asset.Identifier{a, b}
	group.Location = "dock"
	group.DataHashes = []string{"manifest"}
	affected, err := tr.router.Submit(group)
	require.NoError(t, err, "group")
	assert.Equal(t, []asset.Identifier{fixtures.Id("G"), a, b}, affected, "affected")

	g := tr.get(t, fixtures.Id("G"))
	assert.Equal(t, uint64(100), g.Amount, "composite amount")
	assert.Equal(t, asset.Inactive, tr.get(t, a).Status, "component retired")
	assert.Equal(t, g.Id, tr.get(t, a).GroupedBy, "grouped by")

	ungroup := request(process.UngroupAsset, "O")
	ungroup.AssetId = g.Id
	_, err = tr.router.Submit(ungroup)
	require.NoError(t, err, "ungroup")
	assert.Equal(t, asset.Active, tr.get(t, a).Status, "component active")
	assert.True(t, tr.get(t, a).GroupedBy.IsZero(), "grouped by cleared")
	assert.Equal(t, asset.Inactive, tr.get(t, g.Id).Status, "composite retired")
}

func TestSubmitUnauthorizedMutation(t *testing.T) {
	tr := setupRouter(t)
	a := tr.create(t, "A", "O1", 100)
	before := tr.get(t, a)

	req := request(process.UpdateAsset, "O2")
	req.AssetId = a
	req.Location = "elsewhere"
	_, err := tr.router.Submit(req)
	assert.True(t, errors.Is(err, fault.NotAssetOwner), "error: %v", err)
	assert.Equal(t, before, tr.get(t, a), "unchanged")

	req.Caller = "stranger"
	_, err = tr.router.Submit(req)
	assert.True(t, errors.Is(err, fault.UnauthorizedAccess), "non member: %v", err)
}

func TestSubmitRequestShape(t *testing.T) {
	tr := setupRouter(t)

	blank := []func(*router.Request){
		func(r *router.Request) { r.ProcessId = "" },
		func(r *router.Request) { r.NatureId = "" },
		func(r *router.Request) { r.StageId = "" },
	}
	for i, f := range blank {
		req := request(process.CreateAsset, "O")
		f(&req)
		_, err := tr.router.Submit(req)
		assert.True(t, errors.Is(err, fault.MissingParameters), "%d: error: %v", i, err)
	}

	req := request(process.CreateAsset, "O")
	req.StageId = "warehouse"
	_, err := tr.router.Submit(req)
	assert.True(t, errors.Is(err, fault.TransactionValidationFailed), "error: %v", err)
	assert.Contains(t, err.Error(), "stage not found", "reason")
	assert.True(t, fault.IsErrPermission(err), "collaborator rejection class")
}

func TestPauseResume(t *testing.T) {
	tr := setupRouter(t)
	assert.False(t, tr.router.IsPaused(), "initial")

	tr.router.Pause()
	assert.True(t, tr.router.IsPaused(), "paused")
	req := request(process.CreateAsset, "O")
	req.Location = "field"
	req.DataHashes = []string{"h"}
	_, err := tr.router.Submit(req)
	assert.Equal(t, fault.RouterPaused, err, "submit while paused")
	_, err = tr.router.SubmitBatch([]router.Request{req})
	assert.Equal(t, fault.RouterPaused, err, "batch while paused")

	tr.router.Resume()
	_, err = tr.router.Submit(req)
	assert.NoError(t, err, "submit after resume")
}

func TestUnsupportedAction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockProcesses(ctl)
	m.EXPECT().ValidateForSubmission(ns, "p", "n", "s").Return(true, "")
	m.EXPECT().Action(ns, "p", "n", "s").Return(process.ActionKind(99), nil)

	r, err := router.New(logger.New(fixtures.LogCategory), newEngine(t, nil), m, nil)
	require.NoError(t, err, "new router")

	_, err = r.Submit(router.Request{
		Namespace: ns,
		Caller:    "O",
		ProcessId: "p",
		NatureId:  "n",
		StageId:   "s",
	})
	assert.True(t, errors.Is(err, fault.UnsupportedOperation), "error: %v", err)
}

func TestActionLookupFails(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockProcesses(ctl)
	m.EXPECT().ValidateForSubmission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, "")
	m.EXPECT().Action(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(process.UnknownAction, fault.TransactionValidationFailed)

	r, err := router.New(logger.New(fixtures.LogCategory), newEngine(t, nil), m, nil)
	require.NoError(t, err, "new router")

	_, err = r.Submit(router.Request{Namespace: ns, Caller: "O", ProcessId: "p", NatureId: "n", StageId: "s"})
	assert.Equal(t, fault.TransactionValidationFailed, err, "error")
}

func TestReentrantSubmit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	var r *router.Router
	var inner error
	req := router.Request{Namespace: ns, Caller: "O", ProcessId: "p", NatureId: "n", StageId: "s"}

	m := mocks.NewMockProcesses(ctl)
	m.EXPECT().ValidateForSubmission(ns, "p", "n", "s").DoAndReturn(
		func(asset.Namespace, string, string, string) (bool, string) {
			_, inner = r.Submit(req)
			return false, "refused"
		},
	)

	r, err := router.New(logger.New(fixtures.LogCategory), newEngine(t, nil), m, nil)
	require.NoError(t, err, "new router")

	_, err = r.Submit(req)
	assert.True(t, errors.Is(err, fault.TransactionValidationFailed), "outer: %v", err)
	assert.Equal(t, fault.ReentrantCall, inner, "inner")

	// guard released after the abort
	m.EXPECT().ValidateForSubmission(ns, "p", "n", "s").Return(false, "refused")
	_, err = r.Submit(req)
	assert.True(t, errors.Is(err, fault.TransactionValidationFailed), "second: %v", err)
}

func TestSubmitBatch(t *testing.T) {
	tr := setupRouter(t)
	a := tr.create(t, "A", "O1", 100)
	tr.recorder.Reset()

	update := request(process.UpdateAsset, "O1")
	update.AssetId = a
	update.Location = "silo"
	transfer := request(process.TransferAsset, "O1")
	transfer.AssetId = a
	transfer.NewOwner = "O2"
	transfer.Location = "port"

	affected, err := tr.router.SubmitBatch([]router.Request{update, transfer})
	require.NoError(t, err, "batch")
	assert.Equal(t, [][]asset.Identifier{{a}, {a}}, affected, "affected")
	assert.Equal(t, "O2", tr.get(t, a).Owner, "owner")
	assert.Equal(t, 2, len(tr.recorder.Events(lineage.OperationKind)), "aggregate per request")
	assert.Equal(t, 2, len(tr.recorder.Events(lineage.AssetModifiedKind)), "modified per affected id")
}

func TestSubmitBatchIsAtomic(t *testing.T) {
	tr := setupRouter(t)
	a := tr.create(t, "A", "O1", 100)
	before := tr.get(t, a)
	tr.recorder.Reset()

	update := request(process.UpdateAsset, "O1")
	update.AssetId = a
	update.Location = "silo"
	split := request(process.SplitAsset, "O1")
	split.AssetId = a
	split.Amounts = []uint64{10, 20}
	split.Location = "silo"
	split.DataHashes = []string{"x", "y"}

	_, err := tr.router.SubmitBatch([]router.Request{update, split})
	assert.True(t, errors.Is(err, fault.AmountConservationViolated), "error: %v", err)
	assert.Equal(t, before, tr.get(t, a), "first request rolled back")
	assert.Equal(t, 0, len(tr.recorder.Records()), "nothing emitted")
}

func TestSubmitBatchShape(t *testing.T) {
	tr := setupRouter(t)

	_, err := tr.router.SubmitBatch(nil)
	assert.Equal(t, fault.EmptyRequest, err, "empty")

	many := make([]router.Request, constants.MaximumBatchSize+1)
	for i := range many {
		many[i] = request(process.CreateAsset, "O")
	}
	_, err = tr.router.SubmitBatch(many)
	assert.True(t, errors.Is(err, fault.BatchTooLarge), "too large: %v", err)

	mixed := []router.Request{request(process.CreateAsset, "O1"), request(process.CreateAsset, "O2")}
	_, err = tr.router.SubmitBatch(mixed)
	assert.True(t, errors.Is(err, fault.MixedBatchNotAllowed), "mixed callers: %v", err)

	invalid := []router.Request{request(process.CreateAsset, "O"), request(process.CreateAsset, "O")}
	invalid[1].StageId = ""
	_, err = tr.router.SubmitBatch(invalid)
	assert.True(t, errors.Is(err, fault.MissingParameters), "invalid member: %v", err)
	assert.Contains(t, err.Error(), "request: 1", "index reported")
}

func TestSubmitMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	require.NoError(t, err, "metrics")

	r, err := router.New(logger.New(fixtures.LogCategory), newEngine(t, nil), newRegistry(t), m)
	require.NoError(t, err, "new router")

	req := request(process.CreateAsset, "O")
	req.Location = "field"
	req.DataHashes = []string{"h"}
	_, err = r.Submit(req)
	require.NoError(t, err, "create")

	req.Location = ""
	_, err = r.Submit(req)
	require.Error(t, err, "no location")

	failed, err := testutil.GatherAndCount(registry, "lineaged_router_failed_total")
	require.NoError(t, err, "gather")
	assert.Equal(t, 1, failed, "failure series")
	submitted, err := testutil.GatherAndCount(registry, "lineaged_router_submitted_total")
	require.NoError(t, err, "gather")
	assert.Equal(t, 1, submitted, "one action label")
}

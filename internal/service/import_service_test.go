package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/alexanderramin/lapse/internal/importer"
	"github.com/alexanderramin/lapse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archiveOf(sets ...domain.SavedSessionSet) *importer.ImportSchema {
	return importer.Export(sets, serviceNow)
}

func TestImportArchive_AddsNewSets(t *testing.T) {
	confirm := &scriptedConfirmer{}
	svc, obs := setupService(t, testutil.NewMemoryKV(), confirm)
	ctx := context.Background()

	schema := archiveOf(
		testutil.NewTestSet(serviceNow.Add(-48*time.Hour), []int64{1000}),
		testutil.NewTestSet(serviceNow.Add(-24*time.Hour), []int64{2000, 3000}),
	)

	result, err := svc.ImportArchive(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Outcome: OutcomeApplied, Added: 2}, result)
	assert.Equal(t, []string{"Import 2 saved sets?"}, confirm.prompts)

	sets, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, sets, 2)

	require.NotEmpty(t, obs.events)
	assert.Equal(t, "import-sets", obs.events[0].Name)
	assert.Equal(t, 2, obs.events[0].Fields["added"])

	// Importing the same archive again adds nothing.
	result, err = svc.ImportArchive(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Outcome: OutcomeNoOp, Skipped: 2}, result)
}

func TestImportArchive_InvalidSchemaFailsBeforePrompt(t *testing.T) {
	confirm := &scriptedConfirmer{}
	kv := testutil.NewMemoryKV()
	svc, _ := setupService(t, kv, confirm)

	schema := archiveOf(testutil.NewTestSet(serviceNow, []int64{1000}))
	schema.Sets[0].Name = ""
	schema.Sets[0].Sessions[0].Duration = -5

	_, err := svc.ImportArchive(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (3 errors)")
	assert.Empty(t, confirm.prompts)
	assert.Zero(t, kv.SetCalls())
}

func TestImportArchive_RejectsTotalThatDisagreesWithSessions(t *testing.T) {
	kv := testutil.NewMemoryKV()
	svc, _ := setupService(t, kv, AutoConfirm)
	ctx := context.Background()

	schema := archiveOf(testutil.NewTestSet(serviceNow, []int64{10}))
	inflated := int64(999999)
	schema.Sets[0].TotalTime = &inflated

	_, err := svc.ImportArchive(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "totalTime 999999 does not match the session durations (10)")
	assert.Zero(t, kv.SetCalls())

	schema.Sets[0].TotalTime = nil
	_, err = svc.ImportArchive(ctx, schema)
	require.NoError(t, err)

	periods, err := svc.Periods(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, int64(10), periods[0].TotalTime)
	assert.Equal(t, int64(10), periods[0].Sets[0].TotalTime)
}

func TestImportArchive_NilSchema(t *testing.T) {
	kv := testutil.NewMemoryKV()
	svc, _ := setupService(t, kv, AutoConfirm)

	result, err := svc.ImportArchive(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, ImportResult{}, result)
	assert.Zero(t, kv.SetCalls())
}

func TestImportArchive_DeclinedAndEmpty(t *testing.T) {
	kv := testutil.NewMemoryKV()
	svc, _ := setupService(t, kv, &scriptedConfirmer{answers: []bool{false}})
	ctx := context.Background()

	result, err := svc.ImportArchive(ctx, archiveOf())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoOp, result.Outcome)

	result, err = svc.ImportArchive(ctx, archiveOf(testutil.NewTestSet(serviceNow, []int64{1000})))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, result.Outcome)
	assert.Zero(t, kv.SetCalls())
}

func TestExportArchive(t *testing.T) {
	svc, _ := setupService(t, testutil.NewMemoryKV(), AutoConfirm)
	ctx := context.Background()

	_, err := svc.SaveBatch(ctx, recordBatch(1500, 2500))
	require.NoError(t, err)

	schema, err := svc.ExportArchive(ctx)
	require.NoError(t, err)
	assert.Equal(t, importer.ArchiveVersion, schema.Version)
	require.Len(t, schema.Sets, 1)
	require.NotNil(t, schema.Sets[0].TotalTime)
	assert.Equal(t, int64(4000), *schema.Sets[0].TotalTime)
	assert.Len(t, schema.Sets[0].Sessions, 2)
}

func TestExportArchive_UnreadableDataFails(t *testing.T) {
	kv := testutil.NewMemoryKV()
	kv.Put("savedSessionSets", "garbage")
	svc, _ := setupService(t, kv, AutoConfirm)

	_, err := svc.ExportArchive(context.Background())
	require.Error(t, err)
}

package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/alexanderramin/lapse/internal/recorder"
	"github.com/alexanderramin/lapse/internal/repository"
	"github.com/alexanderramin/lapse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}

// scriptedConfirmer answers prompts in order and records them.
type scriptedConfirmer struct {
	answers []bool
	err     error
	prompts []string
}

func (c *scriptedConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return false, c.err
	}
	if len(c.answers) == 0 {
		return true, nil
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

func setupService(t *testing.T, kv repository.KVStore, confirm Confirmer) (SessionSetService, *recordingObserver) {
	t.Helper()
	store := repository.NewSessionSetStore(kv,
		repository.WithStoreClock(testutil.FixedClock(serviceNow, time.Hour)),
		repository.WithNameLocation(time.UTC),
	)
	obs := &recordingObserver{}
	return NewSessionSetService(store, confirm, time.UTC, obs), obs
}

func recordBatch(durations ...int64) *recorder.Recorder {
	rec := recorder.New(recorder.WithClock(testutil.FixedClock(serviceNow.Add(-time.Hour), time.Second)))
	for _, d := range durations {
		rec.RecordStop(d)
	}
	return rec
}

func TestSaveBatch_AppliesAndResetsRecorder(t *testing.T) {
	confirm := &scriptedConfirmer{}
	svc, obs := setupService(t, testutil.NewMemoryKV(), confirm)
	ctx := context.Background()
	rec := recordBatch(1500, 2500)

	result, err := svc.SaveBatch(ctx, rec)

	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, result.Outcome)
	require.NotNil(t, result.Set)
	assert.Equal(t, int64(4000), result.Set.TotalTime)
	assert.Zero(t, rec.Len(), "batch is cleared after a successful save")
	assert.Equal(t, []string{"Save 2 sessions totalling 00:04.00?"}, confirm.prompts)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "save-batch", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "applied", obs.events[0].Fields["outcome"])
}

func TestSaveBatch_EmptyIsNoOpWithoutPrompt(t *testing.T) {
	confirm := &scriptedConfirmer{}
	kv := testutil.NewMemoryKV()
	svc, _ := setupService(t, kv, confirm)

	result, err := svc.SaveBatch(context.Background(), recorder.New())

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoOp, result.Outcome)
	assert.Nil(t, result.Set)
	assert.Empty(t, confirm.prompts)
	assert.Zero(t, kv.SetCalls())
}

func TestSaveBatch_DeclinedKeepsBatch(t *testing.T) {
	kv := testutil.NewMemoryKV()
	svc, _ := setupService(t, kv, &scriptedConfirmer{answers: []bool{false}})
	rec := recordBatch(100)

	result, err := svc.SaveBatch(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, result.Outcome)
	assert.Equal(t, 1, rec.Len())
	assert.Zero(t, kv.SetCalls())
}

func TestSaveBatch_ConfirmErrorPropagates(t *testing.T) {
	svc, _ := setupService(t, testutil.NewMemoryKV(), &scriptedConfirmer{err: errors.New("no tty")})

	_, err := svc.SaveBatch(context.Background(), recordBatch(100))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirming save")
}

func TestSaveBatch_WriteFailureKeepsBatch(t *testing.T) {
	kv := testutil.NewFailingKV(errors.New("full"))
	kv.SetFailOn = 1
	svc, obs := setupService(t, kv, AutoConfirm)
	rec := recordBatch(100, 200)

	_, err := svc.SaveBatch(context.Background(), rec)

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrStorageWrite)
	assert.Equal(t, 2, rec.Len(), "batch must survive a failed save")
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)

	sets, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestDeleteSet_Flow(t *testing.T) {
	confirm := &scriptedConfirmer{answers: []bool{true, false, true}}
	svc, _ := setupService(t, testutil.NewMemoryKV(), confirm)
	ctx := context.Background()

	saved, err := svc.SaveBatch(ctx, recordBatch(1500, 2500))
	require.NoError(t, err)
	id := saved.Set.ID

	outcome, err := svc.DeleteSet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, outcome)
	assert.Equal(t, `Delete "Session 9/10/2025 8:00:00 AM" (2 sessions, 00:04.00)?`, confirm.prompts[1])

	outcome, err = svc.DeleteSet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	sets, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestDeleteSet_UnknownIsNoOpWithoutPrompt(t *testing.T) {
	confirm := &scriptedConfirmer{}
	svc, _ := setupService(t, testutil.NewMemoryKV(), confirm)

	outcome, err := svc.DeleteSet(context.Background(), "missing")

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoOp, outcome)
	assert.Empty(t, confirm.prompts)
}

func TestDeleteSet_WriteFailure(t *testing.T) {
	kv := testutil.NewFailingKV(errors.New("io"))
	kv.SetFailOn = 2
	svc, _ := setupService(t, kv, AutoConfirm)
	ctx := context.Background()

	saved, err := svc.SaveBatch(ctx, recordBatch(100))
	require.NoError(t, err)

	_, err = svc.DeleteSet(ctx, saved.Set.ID)
	assert.ErrorIs(t, err, repository.ErrStorageWrite)

	got, err := svc.Get(ctx, saved.Set.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Set.ID, got.ID)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := setupService(t, testutil.NewMemoryKV(), AutoConfirm)
	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestLoad_MalformedFallsBackToEmpty(t *testing.T) {
	kv := testutil.NewMemoryKV()
	kv.Put(repository.KeySavedSessionSets, "{not json")
	svc, obs := setupService(t, kv, AutoConfirm)

	sets, err := svc.Load(context.Background())

	assert.ErrorIs(t, err, repository.ErrStorageRead)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "empty", obs.events[0].Fields["fallback"])
}

func TestPeriods_MalformedFallsBackToEmpty(t *testing.T) {
	kv := testutil.NewMemoryKV()
	kv.Put(repository.KeySavedSessionSets, "[[[")
	svc, _ := setupService(t, kv, AutoConfirm)

	periods, err := svc.Periods(context.Background())

	assert.ErrorIs(t, err, repository.ErrStorageRead)
	assert.Empty(t, periods)
}

func TestPeriods_GroupsSavedSets(t *testing.T) {
	kv := testutil.NewMemoryKV()
	store := repository.NewSessionSetStore(kv,
		repository.WithStoreClock(func() time.Time { return time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC) }),
	)
	ctx := context.Background()
	_, err := store.Save(ctx, recordBatch(100, 200).Batch())
	require.NoError(t, err)

	late := repository.NewSessionSetStore(kv,
		repository.WithStoreClock(func() time.Time { return time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC) }),
	)
	_, err = late.Save(ctx, recordBatch(300).Batch())
	require.NoError(t, err)

	svc := NewSessionSetService(repository.NewSessionSetStore(kv), AutoConfirm, time.UTC)
	periods, err := svc.Periods(ctx)

	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, domain.SecondHalf, periods[0].Half)
	assert.Equal(t, 1, periods[0].SessionCount)
	assert.Equal(t, 2, periods[1].SessionCount)
	assert.Equal(t, int64(300), periods[1].TotalTime)
}

func TestBreakdown_SelectsByKeyAndDefaultsToLatest(t *testing.T) {
	svc, _ := setupService(t, testutil.NewMemoryKV(), AutoConfirm)
	ctx := context.Background()
	_, err := svc.SaveBatch(ctx, recordBatch(1000, 2000))
	require.NoError(t, err)

	latest, err := svc.Breakdown(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-09a", latest.Key)
	assert.Equal(t, "September 1-15, 2025", latest.Label)
	require.Len(t, latest.Days, 15)
	assert.Equal(t, int64(3000), latest.Days[9].TotalMs, "sessions stopped on September 10")

	byKey, err := svc.Breakdown(ctx, "2025-09a")
	require.NoError(t, err)
	assert.Equal(t, latest.Days, byKey.Days)

	_, err = svc.Breakdown(ctx, "2025-10a")
	assert.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestBreakdown_NoSets(t *testing.T) {
	svc, _ := setupService(t, testutil.NewMemoryKV(), AutoConfirm)
	_, err := svc.Breakdown(context.Background(), "")
	assert.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestClearAll(t *testing.T) {
	confirm := &scriptedConfirmer{answers: []bool{true, true, false, true}}
	svc, _ := setupService(t, testutil.NewMemoryKV(), confirm)
	ctx := context.Background()

	outcome, err := svc.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoOp, outcome, "nothing to clear")
	assert.Empty(t, confirm.prompts, "no prompt when there is nothing to clear")

	_, err = svc.SaveBatch(ctx, recordBatch(100))
	require.NoError(t, err)
	_, err = svc.SaveBatch(ctx, recordBatch(200))
	require.NoError(t, err)

	outcome, err = svc.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, outcome)

	outcome, err = svc.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, "Delete all 2 saved sets?", confirm.prompts[len(confirm.prompts)-1])

	sets, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestClearAll_UnreadableData(t *testing.T) {
	kv := testutil.NewMemoryKV()
	kv.Put(repository.KeySavedSessionSets, "garbage")
	confirm := &scriptedConfirmer{}
	svc, _ := setupService(t, kv, confirm)

	outcome, err := svc.ClearAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, []string{"Saved sets are unreadable. Delete them?"}, confirm.prompts)
	assert.Empty(t, kv.Raw(repository.KeySavedSessionSets))
}

func TestLogUseCaseObserver_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "save-batch",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"session_count": 2},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "delete-set",
		Err:  errors.New("boom"),
	})

	out := buf.String()
	assert.Contains(t, out, "use_case=save-batch")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "session_count=2")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.Equal(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}

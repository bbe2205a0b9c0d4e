package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pawlog/internal/ports/primary"
	"github.com/example/pawlog/internal/ports/secondary"
)

func TestSaveManual(t *testing.T) {
	env := newLogEnv()

	log, err := env.svc.SaveManual(context.Background(), primary.SaveManualRequest{Draft: manualDraft()})
	require.NoError(t, err)
	assert.Equal(t, "id-1", log.ID, "id generated when not supplied")
	assert.Equal(t, testTime(), log.CreatedAt)
	assert.Nil(t, log.Analysis)
}

func TestSaveManual_ExplicitIDIsIdempotent(t *testing.T) {
	env := newLogEnv()
	ctx := context.Background()

	first, err := env.svc.SaveManual(ctx, primary.SaveManualRequest{ID: "retry-me", Draft: manualDraft()})
	require.NoError(t, err)

	second, err := env.svc.SaveManual(ctx, primary.SaveManualRequest{ID: "retry-me", Draft: manualDraft()})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, env.logs.logs, 1)
}

func TestSaveManual_InvalidDraft(t *testing.T) {
	env := newLogEnv()
	draft := manualDraft()
	draft.Color = ""

	_, err := env.svc.SaveManual(context.Background(), primary.SaveManualRequest{Draft: draft})
	require.Error(t, err)
	assert.Empty(t, env.logs.logs)
}

func TestGetDetail(t *testing.T) {
	env := newLogEnv()
	ctx := context.Background()

	res, err := env.svc.SaveWithAnalysis(ctx, photoDraft())
	require.NoError(t, err)

	detail, err := env.svc.GetDetail(ctx, res.Log.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Analysis)
	assert.Equal(t, res.Log.Analysis.ID, detail.Analysis.ID)
}

func TestGetDetail_NoAnalysis(t *testing.T) {
	env := newLogEnv()
	ctx := context.Background()

	log, err := env.svc.SaveManual(ctx, primary.SaveManualRequest{Draft: manualDraft()})
	require.NoError(t, err)

	detail, err := env.svc.GetDetail(ctx, log.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Analysis, "a log without analysis is complete, not an error")
}

func TestGetDetail_NotFound(t *testing.T) {
	env := newLogEnv()

	_, err := env.svc.GetDetail(context.Background(), "missing")
	assert.True(t, errors.Is(err, secondary.ErrNotFound))
}

func TestListRecent(t *testing.T) {
	env := newLogEnv()
	ctx := context.Background()

	base := testTime()
	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		env.svc.now = func() time.Time { return ts }
		_, err := env.svc.SaveManual(ctx, primary.SaveManualRequest{Draft: manualDraft()})
		require.NoError(t, err)
	}

	logs, err := env.svc.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt), "newest first")
}

func TestEditManualFields(t *testing.T) {
	env := newLogEnv()
	ctx := context.Background()

	log, err := env.svc.SaveManual(ctx, primary.SaveManualRequest{Draft: manualDraft()})
	require.NoError(t, err)

	edited := manualDraft()
	edited.ConsistencyScore = 5
	edited.Notes = "corrected after closer look"
	require.NoError(t, env.svc.EditManualFields(ctx, log.ID, edited))

	got, err := env.svc.GetDetail(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.ConsistencyScore)
	assert.Equal(t, "corrected after closer look", got.Notes)
	assert.Equal(t, log.CreatedAt, got.CreatedAt, "creation time is immutable")
}

func TestEditManualFields_InvalidDraft(t *testing.T) {
	env := newLogEnv()

	bad := manualDraft()
	bad.ConsistencyScore = 6
	err := env.svc.EditManualFields(context.Background(), "whatever", bad)
	assert.Error(t, err)
}

func TestDeleteLog_RemovesAnalysisToo(t *testing.T) {
	env := newLogEnv()
	ctx := context.Background()

	res, err := env.svc.SaveWithAnalysis(ctx, photoDraft())
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteLog(ctx, res.Log.ID))
	assert.Empty(t, env.logs.logs)
	assert.Empty(t, env.analyses.analyses)
}

func TestMonthlyUsage(t *testing.T) {
	env := newLogEnv()
	env.logs.count = 12

	usage, err := env.svc.MonthlyUsage(context.Background(), testTime())
	require.NoError(t, err)
	assert.Equal(t, primary.CreditUsage{Used: 12, Limit: 30}, usage)
}

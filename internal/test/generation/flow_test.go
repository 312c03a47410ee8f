package generation_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/generation"
	"github.com/ai-studio/backend/internal/ledger"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/session"
	"github.com/ai-studio/backend/internal/store"
)

type fixture struct {
	mem  *store.Memory
	flow *generation.Service
	user *models.User
}

// newFixture wires the service against the in-memory store with a provider
// that skips the simulated delay.
func newFixture(t *testing.T, credits int) *fixture {
	t.Helper()
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	provider := &generation.MockProvider{ImageCount: 4}
	flow := generation.NewService(provider, ledg, mem, mem, zerolog.Nop())

	profile := &models.Profile{
		ID:      uuid.New(),
		Email:   "test@example.com",
		Credits: credits,
		Plan:    models.PlanFree,
	}
	require.NoError(t, mem.InsertProfile(context.Background(), profile))

	return &fixture{mem: mem, flow: flow, user: models.UserFromProfile(profile)}
}

func TestGenerate_ImageDebitsOneCreditAndPersistsProject(t *testing.T) {
	f := newFixture(t, 100)

	outcome, err := f.flow.Generate(context.Background(), f.user, generation.Request{
		Type:   models.GenerationTypeImage,
		Prompt: "a red bicycle",
	})
	require.NoError(t, err)

	assert.Equal(t, 99, f.user.Credits)
	assert.Len(t, outcome.URLs, 4)
	assert.NotEmpty(t, outcome.ThumbnailURL)

	projects, err := f.mem.ListProjects(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, models.GenerationTypeImage, projects[0].Type)
	assert.Equal(t, "a red bicycle...", projects[0].Title)
	assert.Equal(t, outcome.URLs[0], projects[0].FileURL)

	transactions, err := f.mem.ListTransactions(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, -1, transactions[0].Amount)
	assert.Equal(t, models.TransactionTypeUsage, transactions[0].Type)

	job, ok := f.mem.Job(outcome.JobID)
	require.True(t, ok)
	assert.Equal(t, models.JobStatusCompleted, job.Status)
	assert.Equal(t, outcome.URLs[0], job.ResultURL.String)
}

func TestGenerate_VideoCostsFiveCredits(t *testing.T) {
	f := newFixture(t, 100)

	outcome, err := f.flow.Generate(context.Background(), f.user, generation.Request{
		Type:   models.GenerationTypeVideo,
		Prompt: "waves on a beach",
	})
	require.NoError(t, err)

	assert.Equal(t, 95, f.user.Credits)
	require.Len(t, outcome.URLs, 1)
	assert.Contains(t, outcome.URLs[0], ".mp4")
}

func TestGenerate_EmptyPromptFailsBeforeSimulation(t *testing.T) {
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	provider := &generation.MockProvider{ImageDelay: 2 * time.Second, ImageCount: 4}
	flow := generation.NewService(provider, ledg, mem, mem, zerolog.Nop())

	profile := &models.Profile{ID: uuid.New(), Email: "test@example.com", Credits: 10, Plan: models.PlanFree}
	require.NoError(t, mem.InsertProfile(context.Background(), profile))
	user := models.UserFromProfile(profile)

	start := time.Now()
	_, err := flow.Generate(context.Background(), user, generation.Request{
		Type:   models.GenerationTypeImage,
		Prompt: "   ",
	})
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, apperrors.ErrEmptyPrompt)
	assert.Less(t, elapsed, time.Second, "validation must run before the provider delay")
	assert.Equal(t, 10, user.Credits)
}

func TestGenerate_InsufficientCreditsFailsBeforeSimulation(t *testing.T) {
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	provider := &generation.MockProvider{VideoDelay: 2 * time.Second, ImageCount: 4}
	flow := generation.NewService(provider, ledg, mem, mem, zerolog.Nop())

	profile := &models.Profile{ID: uuid.New(), Email: "test@example.com", Credits: 3, Plan: models.PlanFree}
	require.NoError(t, mem.InsertProfile(context.Background(), profile))
	user := models.UserFromProfile(profile)

	start := time.Now()
	_, err := flow.Generate(context.Background(), user, generation.Request{
		Type:   models.GenerationTypeVideo,
		Prompt: "waves on a beach",
	})
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, apperrors.ErrInsufficientCredits)
	assert.Less(t, elapsed, time.Second)
	assert.Equal(t, 3, user.Credits)

	projects, err := mem.ListProjects(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestGenerate_ImageSucceedsWhereVideoIsRejected(t *testing.T) {
	f := newFixture(t, 3)

	_, err := f.flow.Generate(context.Background(), f.user, generation.Request{
		Type:   models.GenerationTypeImage,
		Prompt: "a red bicycle",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.user.Credits)

	_, err = f.flow.Generate(context.Background(), f.user, generation.Request{
		Type:   models.GenerationTypeVideo,
		Prompt: "waves on a beach",
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCredits)
	assert.Equal(t, 2, f.user.Credits)
}

func TestGenerate_UnsupportedType(t *testing.T) {
	f := newFixture(t, 100)

	_, err := f.flow.Generate(context.Background(), f.user, generation.Request{
		Type:   "hologram",
		Prompt: "a red bicycle",
	})
	assert.Error(t, err)
	assert.Equal(t, 100, f.user.Credits)
}

func TestGenerate_ProjectInsertFailureReportsDebit(t *testing.T) {
	f := newFixture(t, 100)
	f.mem.FailProjectInsert = true

	_, err := f.flow.Generate(context.Background(), f.user, generation.Request{
		Type:   models.GenerationTypeImage,
		Prompt: "a red bicycle",
	})
	assert.ErrorIs(t, err, apperrors.ErrDebitedNotRecorded)

	// The debit is not rolled back, only reported.
	assert.Equal(t, 99, f.user.Credits)
	transactions, err := f.mem.ListTransactions(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestGenerate_UnconfiguredBackend(t *testing.T) {
	sessions := session.NewManager(nil, nil, zerolog.Nop())
	ledg := ledger.New(nil, sessions, zerolog.Nop())
	provider := &generation.MockProvider{ImageCount: 4}
	flow := generation.NewService(provider, ledg, nil, nil, zerolog.Nop())
	user := &models.User{ID: uuid.New(), Credits: 100}

	_, err := flow.Generate(context.Background(), user, generation.Request{
		Type:   models.GenerationTypeImage,
		Prompt: "a red bicycle",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestGenerate_LongPromptTitleIsTruncated(t *testing.T) {
	f := newFixture(t, 100)
	prompt := strings.Repeat("x", 80)

	_, err := f.flow.Generate(context.Background(), f.user, generation.Request{
		Type:   models.GenerationTypeImage,
		Prompt: prompt,
	})
	require.NoError(t, err)

	projects, err := f.mem.ListProjects(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, strings.Repeat("x", 50)+"...", projects[0].Title)
}

func TestCost(t *testing.T) {
	assert.Equal(t, 1, generation.Cost("image"))
	assert.Equal(t, 5, generation.Cost("video"))
	assert.Equal(t, 2, generation.Cost("upscale"))
	assert.Equal(t, 1, generation.Cost("variation"))
	assert.Equal(t, 1, generation.Cost("remove_bg"))
	assert.Equal(t, 0, generation.Cost("hologram"))
}

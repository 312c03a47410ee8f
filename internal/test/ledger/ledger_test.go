package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/ledger"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/session"
	"github.com/ai-studio/backend/internal/store"
)

func newTestUser(t *testing.T, mem *store.Memory, credits int) *models.User {
	t.Helper()
	profile := &models.Profile{
		ID:      uuid.New(),
		Email:   "test@example.com",
		Credits: credits,
		Plan:    models.PlanFree,
	}
	require.NoError(t, mem.InsertProfile(context.Background(), profile))
	return models.UserFromProfile(profile)
}

func TestAdjust_CreditIsRecordedAsBonus(t *testing.T) {
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	user := newTestUser(t, mem, 100)

	tx, err := ledg.Adjust(context.Background(), user, 50, "", uuid.NullUUID{})
	require.NoError(t, err)

	assert.Equal(t, 150, user.Credits)
	assert.Equal(t, models.TransactionTypeBonus, tx.Type)
	assert.Equal(t, "Credits added", tx.Description)
	assert.Equal(t, 50, tx.Amount)

	profile, err := mem.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, profile.Credits)
}

func TestAdjust_DebitIsRecordedAsUsage(t *testing.T) {
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	user := newTestUser(t, mem, 100)

	tx, err := ledg.Adjust(context.Background(), user, -5, "Credits used for video generation", uuid.NullUUID{})
	require.NoError(t, err)

	assert.Equal(t, 95, user.Credits)
	assert.Equal(t, models.TransactionTypeUsage, tx.Type)
	assert.Equal(t, "Credits used for video generation", tx.Description)
}

func TestAdjust_RejectsDebitBelowZero(t *testing.T) {
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	user := newTestUser(t, mem, 3)

	_, err := ledg.Adjust(context.Background(), user, -5, "", uuid.NullUUID{})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCredits)

	// Balance and ledger are untouched after a rejected debit.
	assert.Equal(t, 3, user.Credits)
	transactions, err := ledg.Transactions(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestAdjust_BalanceAndTransactionStayConsistent(t *testing.T) {
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	user := newTestUser(t, mem, 100)

	amounts := []int{-1, -5, 20, -2}
	for _, amount := range amounts {
		_, err := ledg.Adjust(context.Background(), user, amount, "", uuid.NullUUID{})
		require.NoError(t, err)
	}

	transactions, err := ledg.Transactions(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, transactions, len(amounts))

	sum := 0
	for _, tx := range transactions {
		sum += tx.Amount
	}
	assert.Equal(t, 100+sum, user.Credits)

	profile, err := mem.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Credits, profile.Credits)
}

func TestTransactions_NewestFirst(t *testing.T) {
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	user := newTestUser(t, mem, 100)

	_, err := ledg.Adjust(context.Background(), user, -1, "first", uuid.NullUUID{})
	require.NoError(t, err)
	_, err = ledg.Adjust(context.Background(), user, -1, "second", uuid.NullUUID{})
	require.NoError(t, err)

	transactions, err := ledg.Transactions(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "second", transactions[0].Description)
	assert.Equal(t, "first", transactions[1].Description)
}

func TestAdjust_UnconfiguredBackendKeepsBalanceInMemory(t *testing.T) {
	sessions := session.NewManager(nil, nil, zerolog.Nop())
	ledg := ledger.New(nil, sessions, zerolog.Nop())
	user := &models.User{ID: uuid.New(), Credits: 100}

	tx, err := ledg.Adjust(context.Background(), user, -5, "", uuid.NullUUID{})
	require.NoError(t, err)

	assert.Equal(t, 95, user.Credits)
	assert.Equal(t, uuid.Nil, tx.ID)

	_, err = ledg.Transactions(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestAdjust_MirrorsBalanceIntoSession(t *testing.T) {
	mem := store.NewMemory()
	sessions := session.NewManager(nil, mem, zerolog.Nop())
	ledg := ledger.New(mem, sessions, zerolog.Nop())
	user := newTestUser(t, mem, 100)

	// Prime the session cache.
	cached, err := sessions.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 100, cached.Credits)

	_, err = ledg.Adjust(context.Background(), user, -7, "", uuid.NullUUID{})
	require.NoError(t, err)

	cached, err = sessions.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 93, cached.Credits)
}

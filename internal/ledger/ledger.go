// Package ledger applies credit balance changes and appends the audit
// transaction each change produces.
package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/metrics"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/session"
	"github.com/ai-studio/backend/internal/store"
)

type Ledger struct {
	store    store.LedgerStore // nil when the backend is unconfigured
	sessions *session.Manager
	log      zerolog.Logger
}

func New(st store.LedgerStore, sessions *session.Manager, log zerolog.Logger) *Ledger {
	return &Ledger{store: st, sessions: sessions, log: log}
}

// Adjust applies a signed credit change to the current session's user,
// persisting the new balance together with the audit transaction and then
// mirroring it into the in-memory projection. Debits that would push the
// balance below zero are rejected.
//
// Without a configured backend the adjustment is applied to in-memory state
// only and is lost on restart.
func (l *Ledger) Adjust(ctx context.Context, user *models.User, amount int, description string, projectID uuid.NullUUID) (*models.CreditTransaction, error) {
	newBalance := user.Credits + amount
	if amount < 0 && newBalance < 0 {
		return nil, apperrors.ErrInsufficientCredits
	}

	txType := models.TransactionTypeUsage
	if amount > 0 {
		txType = models.TransactionTypeBonus
	}
	if description == "" {
		if amount > 0 {
			description = "Credits added"
		} else {
			description = "Credits used"
		}
	}

	tx := &models.CreditTransaction{
		UserID:      user.ID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		ProjectID:   projectID,
	}

	if l.store == nil {
		l.log.Warn().Str("user_id", user.ID.String()).Int("amount", amount).
			Msg("backend unconfigured, credit change not persisted")
	} else if err := l.store.AdjustCredits(ctx, user.ID, newBalance, tx); err != nil {
		return nil, err
	}

	user.Credits = newBalance
	l.sessions.ApplyCredits(user.ID, newBalance)

	metrics.CreditAdjustmentsTotal.WithLabelValues(txType).Inc()
	if amount < 0 {
		metrics.CreditsSpentTotal.Add(float64(-amount))
	}

	l.log.Info().Str("user_id", user.ID.String()).Int("amount", amount).
		Int("balance", newBalance).Str("type", txType).Msg("credits adjusted")
	return tx, nil
}

// Transactions returns the user's ledger entries newest-first.
func (l *Ledger) Transactions(ctx context.Context, userID uuid.UUID) ([]models.CreditTransaction, error) {
	if l.store == nil {
		return nil, apperrors.ErrNotConfigured
	}
	return l.store.ListTransactions(ctx, userID)
}

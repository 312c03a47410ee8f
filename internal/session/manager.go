// Package session wraps the remote auth backend and holds the in-memory
// User projection for each signed-in identity. The remote profiles row is
// the durable source of truth; the projection is the single in-memory copy.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/store"
)

const initialCreditGrant = 100

// Identity is an authenticated remote identity and its tokens.
type Identity struct {
	UserID       uuid.UUID
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// AuthClient is the remote auth subsystem. The Supabase implementation
// lives in internal/supabase; tests inject fakes.
type AuthClient interface {
	SignUp(email, password string) (*Identity, error)
	SignIn(email, password string) (*Identity, error)
	SignOut(accessToken string) error
}

type Manager struct {
	auth     AuthClient         // nil when the backend is unconfigured
	profiles store.ProfileStore // nil when the backend is unconfigured
	log      zerolog.Logger

	mu      sync.RWMutex
	users   map[uuid.UUID]*models.User
	subs    map[int]chan Event
	nextSub int
	closed  bool
}

func NewManager(auth AuthClient, profiles store.ProfileStore, log zerolog.Logger) *Manager {
	return &Manager{
		auth:     auth,
		profiles: profiles,
		log:      log,
		users:    make(map[uuid.UUID]*models.User),
		subs:     make(map[int]chan Event),
	}
}

// Register creates the remote identity, then inserts the profile row with
// the initial credit grant. There is no compensating rollback: a profile
// insert failure leaves the orphaned identity behind.
func (m *Manager) Register(ctx context.Context, email, password, name string) (*models.User, *Identity, error) {
	if m.auth == nil || m.profiles == nil {
		return nil, nil, apperrors.ErrNotConfigured
	}

	identity, err := m.auth.SignUp(email, password)
	if err != nil {
		return nil, nil, err
	}

	profile := &models.Profile{
		ID:       identity.UserID,
		Email:    email,
		FullName: name,
		Credits:  initialCreditGrant,
		Plan:     models.PlanFree,
	}
	if err := m.profiles.InsertProfile(ctx, profile); err != nil {
		return nil, nil, fmt.Errorf("%w: create profile: %v", apperrors.ErrAuth, err)
	}

	user := models.UserFromProfile(profile)
	m.cache(user)
	m.publish(Event{Type: EventSignedIn, UserID: user.ID})

	m.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, identity, nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, *Identity, error) {
	if m.auth == nil {
		return nil, nil, apperrors.ErrNotConfigured
	}

	identity, err := m.auth.SignIn(email, password)
	if err != nil {
		return nil, nil, err
	}

	user, err := m.loadUser(ctx, identity.UserID)
	if err != nil {
		return nil, nil, err
	}
	m.publish(Event{Type: EventSignedIn, UserID: user.ID})

	return user, identity, nil
}

// Logout clears the remote session and the local projection. The local
// projection is dropped even when the remote sign-out fails.
func (m *Manager) Logout(ctx context.Context, userID uuid.UUID, accessToken string) error {
	if m.auth == nil {
		return apperrors.ErrNotConfigured
	}

	err := m.auth.SignOut(accessToken)

	m.mu.Lock()
	delete(m.users, userID)
	m.mu.Unlock()
	m.publish(Event{Type: EventSignedOut, UserID: userID})

	return err
}

// CurrentUser returns the cached projection, deriving it from the remote
// profiles row on first access.
func (m *Manager) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	u, ok := m.users[userID]
	m.mu.RUnlock()
	if ok {
		cp := *u
		return &cp, nil
	}
	return m.loadUser(ctx, userID)
}

// ApplyCredits mirrors a new balance into the cached projection. The credit
// ledger calls this after persisting an adjustment.
func (m *Manager) ApplyCredits(userID uuid.UUID, newBalance int) {
	m.mu.Lock()
	if u, ok := m.users[userID]; ok {
		u.Credits = newBalance
	}
	m.mu.Unlock()
	m.publish(Event{Type: EventCreditsChanged, UserID: userID})
}

// Subscribe registers for session-change events. Events are dropped rather
// than block when a subscriber falls behind.
func (m *Manager) Subscribe() *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Event, 16)
	m.subs[id] = ch

	return &Subscription{
		C: ch,
		cancel: func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(sub)
			}
		},
	}
}

// Close tears down every remaining subscription.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}

func (m *Manager) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if m.profiles == nil {
		return nil, apperrors.ErrNotConfigured
	}
	profile, err := m.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := models.UserFromProfile(profile)
	m.cache(user)
	return user, nil
}

func (m *Manager) cache(user *models.User) {
	cp := *user
	m.mu.Lock()
	m.users[user.ID] = &cp
	m.mu.Unlock()
}

func (m *Manager) publish(ev Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return
	}
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

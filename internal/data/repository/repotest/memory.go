// Package repotest provides in-memory repositories for tests above the
// SQL layer. They follow the same nil-on-miss and ErrNotFound-on-zero-rows
// conventions as the pgx implementations.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/data/repository"

	"github.com/google/uuid"
)

// New returns a Repository whose members are the in-memory types below.
func New() *repository.Repository {
	return &repository.Repository{
		User:     NewUsers(),
		Session:  NewSessions(),
		Role:     NewRoles(),
		Feedback: NewFeedback(),
	}
}

// ==================== USERS ====================

type Users struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func NewUsers() *Users {
	return &Users{users: map[uuid.UUID]*entity.User{}}
}

func (r *Users) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	cp.Roles = append(entity.Roles{}, user.Roles...)
	r.users[user.ID] = &cp
	return nil
}

func (r *Users) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *Users) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *Users) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return window(all, limit, offset), nil
}

func (r *Users) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *Users) SetRoles(_ context.Context, userID uuid.UUID, roles entity.Roles) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Roles = append(entity.Roles{}, roles...)
	u.UpdatedAt = time.Now()
	return nil
}

// SetActive flips the account flag, which has no repository method.
func (r *Users) SetActive(userID uuid.UUID, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.IsActive = active
	}
}

func (r *Users) find(match func(*entity.User) bool) *entity.User {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			cp.Roles = append(entity.Roles{}, u.Roles...)
			return &cp
		}
	}
	return nil
}

// ==================== SESSIONS ====================

type Sessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: map[uuid.UUID]*entity.Session{}}
}

func (r *Sessions) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.Token] = &cp
	return nil
}

func (r *Sessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *Sessions) Revoke(_ context.Context, token uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *Sessions) CleanExpiredSessions(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	for token, s := range r.sessions {
		if s.ExpiresAt.Before(cutoff) {
			delete(r.sessions, token)
			n++
		}
	}
	return n, nil
}

func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ==================== ROLES ====================

type Roles struct {
	mu    sync.Mutex
	roles map[entity.Role][]entity.Permission
}

func NewRoles() *Roles {
	return &Roles{roles: map[entity.Role][]entity.Permission{}}
}

func (r *Roles) EnsureRole(_ context.Context, role entity.Role, perms []entity.Permission) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[role]; ok {
		return false, nil
	}
	r.roles[role] = append([]entity.Permission{}, perms...)
	return true, nil
}

func (r *Roles) FindAll(_ context.Context) ([]entity.RoleDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defs := make([]entity.RoleDefinition, 0, len(r.roles))
	for name, perms := range r.roles {
		defs = append(defs, entity.RoleDefinition{Name: name, Permissions: perms})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// ==================== FEEDBACK ====================

type Feedback struct {
	mu      sync.Mutex
	records map[uuid.UUID]*entity.Feedback
	writes  int
}

func NewFeedback() *Feedback {
	return &Feedback{records: map[uuid.UUID]*entity.Feedback{}}
}

func (r *Feedback) Create(_ context.Context, fb *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *fb
	r.records[fb.ID] = &cp
	r.writes++
	return nil
}

func (r *Feedback) FindByID(_ context.Context, id uuid.UUID) (*entity.Feedback, error) {
	return r.Get(id), nil
}

func (r *Feedback) FindAll(_ context.Context, filter entity.FeedbackFilter, limit, offset int) ([]*entity.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return window(r.matching(filter), limit, offset), nil
}

func (r *Feedback) Count(_ context.Context, filter entity.FeedbackFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *Feedback) Update(_ context.Context, fb *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[fb.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Comment = fb.Comment
	existing.IsVerified = fb.IsVerified
	existing.UpdatedAt = fb.UpdatedAt
	r.writes++
	return nil
}

func (r *Feedback) MarkVerified(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	existing.IsVerified = true
	existing.UpdatedAt = at
	r.writes++
	return nil
}

func (r *Feedback) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	r.writes++
	return nil
}

// Get returns a copy of the stored record, or nil.
func (r *Feedback) Get(id uuid.UUID) *entity.Feedback {
	r.mu.Lock()
	defer r.mu.Unlock()
	fb, ok := r.records[id]
	if !ok {
		return nil
	}
	cp := *fb
	return &cp
}

func (r *Feedback) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Writes counts successful mutations, so tests can assert nothing was
// written.
func (r *Feedback) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *Feedback) matching(filter entity.FeedbackFilter) []*entity.Feedback {
	var out []*entity.Feedback
	for _, fb := range r.records {
		if filter.AuthorID != nil && fb.UserID != *filter.AuthorID {
			continue
		}
		if filter.VisibleTo != nil && !fb.IsVerified && fb.UserID != *filter.VisibleTo {
			continue
		}
		cp := *fb
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

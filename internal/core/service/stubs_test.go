package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
	"github.com/tempsense/tracking-api/internal/core/token"
	"github.com/tempsense/tracking-api/internal/pkg/password"
)

var discardLogger = zerolog.Nop()

const testSecret = "service-test-secret-that-is-long-enough-0123456789"

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[copy.Username] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, username, hash string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// seedUser stores a user whose password is hashed with the test hasher.
func seedUser(r *stubUserRepo, h *password.Hasher, username, pass string, role domain.Role) *domain.User {
	hash, err := h.Hash(pass)
	if err != nil {
		panic(err)
	}
	u, err := r.Create(context.Background(), &domain.User{Username: username, PasswordHash: hash, Role: role})
	if err != nil {
		panic(err)
	}
	return u
}

func newTestHasher() *password.Hasher {
	return password.NewHasher(bcrypt.MinCost)
}

func newTestCodec(now func() time.Time) *token.Codec {
	opts := []token.Option{}
	if now != nil {
		opts = append(opts, token.WithClock(now))
	}
	c, err := token.NewCodec([]byte(testSecret), opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// ---------------------------------------------------------------------------
// Series
// ---------------------------------------------------------------------------

type stubSeriesRepo struct {
	byID      map[string]*domain.Series
	createErr error
	finds     int
	nextID    int
}

func newStubSeriesRepo() *stubSeriesRepo {
	return &stubSeriesRepo{byID: make(map[string]*domain.Series)}
}

func cloneSeries(s *domain.Series) *domain.Series {
	clone := *s
	return &clone
}

func (r *stubSeriesRepo) List(_ context.Context) ([]*domain.Series, error) {
	out := make([]*domain.Series, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, cloneSeries(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubSeriesRepo) FindByID(_ context.Context, id string) (*domain.Series, error) {
	r.finds++
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSeriesNotFound
	}
	return cloneSeries(s), nil
}

func (r *stubSeriesRepo) Create(_ context.Context, s *domain.Series) (*domain.Series, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := cloneSeries(s)
	clone.ID = fmt.Sprintf("series-%d", r.nextID)
	r.byID[clone.ID] = clone
	return cloneSeries(clone), nil
}

func (r *stubSeriesRepo) Update(_ context.Context, s *domain.Series) (*domain.Series, error) {
	existing, ok := r.byID[s.ID]
	if !ok {
		return nil, domain.ErrSeriesNotFound
	}
	clone := cloneSeries(s)
	clone.CreatedBy = existing.CreatedBy
	clone.CreatedByUsername = existing.CreatedByUsername
	clone.CreatedAt = existing.CreatedAt
	r.byID[s.ID] = clone
	return cloneSeries(clone), nil
}

func (r *stubSeriesRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSeriesNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubSeriesCache struct {
	entries       map[string]*domain.Series
	getErr        error
	invalidateErr error
	invalidated   []string
}

func newStubSeriesCache() *stubSeriesCache {
	return &stubSeriesCache{entries: make(map[string]*domain.Series)}
}

func (c *stubSeriesCache) Get(_ context.Context, id string) (*domain.Series, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	s, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	return cloneSeries(s), nil
}

func (c *stubSeriesCache) Set(_ context.Context, s *domain.Series) error {
	c.entries[s.ID] = cloneSeries(s)
	return nil
}

func (c *stubSeriesCache) Invalidate(_ context.Context, id string) error {
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

// ---------------------------------------------------------------------------
// Measurements
// ---------------------------------------------------------------------------

type stubMeasurementRepo struct {
	byID      map[string]*domain.Measurement
	createErr error
	nextID    int
}

func newStubMeasurementRepo() *stubMeasurementRepo {
	return &stubMeasurementRepo{byID: make(map[string]*domain.Measurement)}
}

func cloneMeasurement(m *domain.Measurement) *domain.Measurement {
	clone := *m
	return &clone
}

// persisted drops the fields the real store does not persist.
func persisted(m *domain.Measurement) *domain.Measurement {
	clone := cloneMeasurement(m)
	clone.SeriesName = ""
	return clone
}

func (r *stubMeasurementRepo) sorted(filter func(*domain.Measurement) bool) []*domain.Measurement {
	out := []*domain.Measurement{}
	for _, m := range r.byID {
		if filter == nil || filter(m) {
			out = append(out, cloneMeasurement(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func (r *stubMeasurementRepo) List(_ context.Context) ([]*domain.Measurement, error) {
	return r.sorted(nil), nil
}

func (r *stubMeasurementRepo) ListBySeries(_ context.Context, seriesID string) ([]*domain.Measurement, error) {
	return r.sorted(func(m *domain.Measurement) bool { return m.SeriesID == seriesID }), nil
}

func (r *stubMeasurementRepo) FindByID(_ context.Context, id string) (*domain.Measurement, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMeasurementNotFound
	}
	return cloneMeasurement(m), nil
}

func (r *stubMeasurementRepo) Create(_ context.Context, m *domain.Measurement) (*domain.Measurement, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := persisted(m)
	clone.ID = fmt.Sprintf("m-%d", r.nextID)
	r.byID[clone.ID] = clone
	return cloneMeasurement(clone), nil
}

func (r *stubMeasurementRepo) Update(_ context.Context, m *domain.Measurement) (*domain.Measurement, error) {
	if _, ok := r.byID[m.ID]; !ok {
		return nil, domain.ErrMeasurementNotFound
	}
	r.byID[m.ID] = persisted(m)
	return persisted(m), nil
}

func (r *stubMeasurementRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrMeasurementNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubMeasurementRepo) DeleteBySeries(_ context.Context, seriesID string) (int64, error) {
	var n int64
	for id, m := range r.byID {
		if m.SeriesID == seriesID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

var (
	_ ports.UserRepository        = (*stubUserRepo)(nil)
	_ ports.SeriesRepository      = (*stubSeriesRepo)(nil)
	_ ports.SeriesCache           = (*stubSeriesCache)(nil)
	_ ports.MeasurementRepository = (*stubMeasurementRepo)(nil)
)

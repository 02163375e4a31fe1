package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"bookingcalendar/internal/domain"
)

var errStore = errors.New("store unavailable")

// fakeEventRepo is an in-memory EventRepository that keeps insertion order as scan order.
type fakeEventRepo struct {
	order   []int64
	byID    map[int64]*domain.Event
	nextID  int64
	err     error
	filters []domain.EventFilter
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1}
	for _, e := range events {
		_ = f.Upsert(context.Background(), e)
	}
	return f
}

func (f *fakeEventRepo) Upsert(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if e.ID == 0 {
		e.ID = f.nextID
		f.nextID++
		f.order = append(f.order, e.ID)
	} else if _, ok := f.byID[e.ID]; !ok {
		return nil
	}
	e.LastModified = time.Now().UTC()
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Get(ctx context.Context, id int64) (*domain.Event, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, false, nil
	}
	cp := *e
	return &cp, true, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Event, 0)
	for _, id := range f.order {
		e, ok := f.byID[id]
		if !ok || !filter.InRange(e.Date) || !filter.Matches(e) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.byID, id)
	return nil
}

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) CreateIfAbsent(ctx context.Context, u *domain.User) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return false, nil
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return true, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	u, ok := f.byEmail[email]
	return u, ok, nil
}

// fakeNamedRepo backs every append-only catalog repository in tests.
type fakeNamedRepo[T any] struct {
	items  []*T
	setID  func(*T, int64)
	name   func(*T) string
	nextID int64
	err    error
}

func (f *fakeNamedRepo[T]) Create(ctx context.Context, v *T) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	f.setID(v, f.nextID)
	f.items = append(f.items, v)
	return nil
}

func (f *fakeNamedRepo[T]) List(ctx context.Context) ([]*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]*T(nil), f.items...)
	sort.SliceStable(out, func(i, j int) bool { return f.name(out[i]) < f.name(out[j]) })
	return out, nil
}

func newFakeArtistRepo() *fakeNamedRepo[domain.Artist] {
	return &fakeNamedRepo[domain.Artist]{
		setID: func(a *domain.Artist, id int64) { a.ID = id },
		name:  func(a *domain.Artist) string { return a.Name },
	}
}

func newFakeFormatRepo(formats ...*domain.Format) *fakeNamedRepo[domain.Format] {
	f := &fakeNamedRepo[domain.Format]{
		setID: func(v *domain.Format, id int64) { v.ID = id },
		name:  func(v *domain.Format) string { return v.Name },
	}
	for _, v := range formats {
		_ = f.Create(context.Background(), v)
	}
	return f
}

func newFakePromoterRepo() *fakeNamedRepo[domain.Promoter] {
	return &fakeNamedRepo[domain.Promoter]{
		setID: func(v *domain.Promoter, id int64) { v.ID = id },
		name:  func(v *domain.Promoter) string { return v.Name },
	}
}

func newFakeTourManagerRepo() *fakeNamedRepo[domain.TourManager] {
	return &fakeNamedRepo[domain.TourManager]{
		setID: func(v *domain.TourManager, id int64) { v.ID = id },
		name:  func(v *domain.TourManager) string { return v.Name },
	}
}

func newFakeServiceRepo() *fakeNamedRepo[domain.Service] {
	return &fakeNamedRepo[domain.Service]{
		setID: func(v *domain.Service, id int64) { v.ID = id },
		name:  func(v *domain.Service) string { return v.Name },
	}
}

// fakeHasher "hashes" by prefixing, which keeps tests fast.
type fakeHasher struct {
	calls int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	h.calls++
	return "hashed:" + password, nil
}

func (h *fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID int64, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + email, nil
}

type fakeExporter struct {
	events []*domain.Event
	names  map[int64]string
}

func (f *fakeExporter) Export(events []*domain.Event, formatNames map[int64]string) (string, error) {
	f.events = events
	f.names = formatNames
	return "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", nil
}

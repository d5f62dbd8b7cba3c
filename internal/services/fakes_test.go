package services

import (
	"context"
	"sort"

	"rsvptracker/internal/domain"
)

// memoryRepo is an in-memory domain.GuestRepository.
type memoryRepo struct {
	guests map[string]domain.Guest
	err    error // returned by every call when set
	// failCreate makes Create fail for this phone number.
	failCreate string
	// updateCalls counts UpdateRSVP invocations.
	updateCalls int
}

func newMemoryRepo(guests ...domain.Guest) *memoryRepo {
	r := &memoryRepo{guests: make(map[string]domain.Guest)}
	for _, g := range guests {
		r.guests[g.PhoneNumber] = g
	}
	return r
}

func (r *memoryRepo) clone() *memoryRepo {
	c := newMemoryRepo()
	for k, v := range r.guests {
		c.guests[k] = v
	}
	c.err = r.err
	c.failCreate = r.failCreate
	return c
}

func (r *memoryRepo) GetAll(ctx context.Context) ([]*domain.Guest, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Guest, 0, len(r.guests))
	for _, g := range r.guests {
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PhoneNumber < out[j].PhoneNumber
	})
	return out, nil
}

func (r *memoryRepo) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Guest, error) {
	if r.err != nil {
		return nil, r.err
	}
	g, ok := r.guests[phoneNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (r *memoryRepo) Exists(ctx context.Context, phoneNumber string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.guests[phoneNumber]
	return ok, nil
}

func (r *memoryRepo) UpdateRSVP(ctx context.Context, phoneNumber string, response domain.RSVPStatus, attendingCount int) (int64, error) {
	r.updateCalls++
	if r.err != nil {
		return 0, r.err
	}
	g, ok := r.guests[phoneNumber]
	if !ok {
		return 0, nil
	}
	g.Response = response
	g.AttendingCount = attendingCount
	r.guests[phoneNumber] = g
	return 1, nil
}

func (r *memoryRepo) Create(ctx context.Context, g *domain.Guest) error {
	if r.err != nil {
		return r.err
	}
	if g.PhoneNumber == r.failCreate {
		return context.DeadlineExceeded
	}
	if _, ok := r.guests[g.PhoneNumber]; ok {
		return domain.ErrDuplicateKey
	}
	r.guests[g.PhoneNumber] = *g
	return nil
}

func (r *memoryRepo) Count(ctx context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.guests)), nil
}

func (r *memoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	n := int64(len(r.guests))
	r.guests = make(map[string]domain.Guest)
	return n, nil
}

func (r *memoryRepo) ResetAll(ctx context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	for k, g := range r.guests {
		g.Response = domain.RSVPPending
		g.AttendingCount = 0
		r.guests[k] = g
	}
	return int64(len(r.guests)), nil
}

// memoryStore runs transactions against a copy and swaps it in on success.
type memoryStore struct {
	repo *memoryRepo
}

func (s *memoryStore) Guests() domain.GuestRepository { return s.repo }

func (s *memoryStore) WithTx(ctx context.Context, fn func(repo domain.GuestRepository) error) error {
	tx := s.repo.clone()
	if err := fn(tx); err != nil {
		return err
	}
	s.repo.guests = tx.guests
	return nil
}

// fakeSchema records dropped tables.
type fakeSchema struct {
	tables  []string
	dropped []string
	failOn  string
	listErr error
}

func (f *fakeSchema) ListTables(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tables, nil
}

func (f *fakeSchema) DropTable(ctx context.Context, name string) error {
	if name == f.failOn {
		return context.Canceled
	}
	f.dropped = append(f.dropped, name)
	return nil
}

// fakeMailer captures the last report.
type fakeMailer struct {
	sent domain.Report
	err  error
}

func (m *fakeMailer) SendReport(_ context.Context, report domain.Report) error {
	if m.err != nil {
		return m.err
	}
	m.sent = report
	return nil
}

type fakeRenderer struct {
	name string
	data any
}

func (r *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	r.name, r.data = name, data
	return "subject", "<p>html</p>", "text", nil
}

package settlement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/remittance"
	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/worklog"
)

// fakeStore is an in-memory stand-in for the postgresql repositories. It
// implements all three repository interfaces against plain slices so service
// behavior can be tested without a database.
type fakeStore struct {
	mu sync.Mutex

	users       []user.User
	worklogs    []worklog.WorkLog
	segments    []worklog.TimeSegment
	adjustments []worklog.Adjustment
	remittances []remittance.Remittance
	items       []remittance.RemittanceItem

	nextID int

	// failCreateItem makes every CreateItem call fail, to exercise
	// transaction rollback paths.
	failCreateItem bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeStore) addUser(email string) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user.User{ID: s.newID("user"), Email: email, CreatedAt: time.Now()}
	s.users = append(s.users, u)
	return u
}

func (s *fakeStore) addWorkLog(userID string) worklog.WorkLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := worklog.WorkLog{ID: s.newID("worklog"), UserID: userID, CreatedAt: time.Now()}
	s.worklogs = append(s.worklogs, w)
	return w
}

func (s *fakeStore) addSegment(worklogID string, minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.segments = append(s.segments, worklog.TimeSegment{
		ID:        s.newID("segment"),
		WorkLogID: worklogID,
		Minutes:   minutes,
	})
}

func (s *fakeStore) addAdjustment(worklogID string, amount string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.adjustments = append(s.adjustments, worklog.Adjustment{
		ID:        s.newID("adjustment"),
		WorkLogID: worklogID,
		Amount:    decimal.RequireFromString(amount),
	})
}

func (s *fakeStore) addRemittance(userID string, status remittance.Status, itemAmounts map[string]string) remittance.Remittance {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := remittance.Remittance{
		ID:     s.newID("remittance"),
		UserID: userID,
		Status: status,
	}
	s.remittances = append(s.remittances, r)

	for worklogID, amount := range itemAmounts {
		s.items = append(s.items, remittance.RemittanceItem{
			ID:           s.newID("item"),
			RemittanceID: r.ID,
			WorkLogID:    worklogID,
			Amount:       decimal.RequireFromString(amount),
		})
	}
	return r
}

// UserRepository

func (s *fakeStore) GetAll(ctx context.Context) ([]user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]user.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// WorkLogRepository

type fakeWorkLogRepo struct {
	store *fakeStore
}

func (r *fakeWorkLogRepo) GetAll(ctx context.Context) ([]worklog.WorkLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]worklog.WorkLog, len(r.store.worklogs))
	copy(out, r.store.worklogs)
	return out, nil
}

func (r *fakeWorkLogRepo) GetByUserID(ctx context.Context, userID string) ([]worklog.WorkLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []worklog.WorkLog
	for _, w := range r.store.worklogs {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkLogRepo) SumSegmentMinutes(ctx context.Context, worklogID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var total int64
	for _, seg := range r.store.segments {
		if seg.WorkLogID == worklogID {
			total += int64(seg.Minutes)
		}
	}
	return total, nil
}

func (r *fakeWorkLogRepo) SumAdjustments(ctx context.Context, worklogID string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	total := decimal.Zero
	for _, adj := range r.store.adjustments {
		if adj.WorkLogID == worklogID {
			total = total.Add(adj.Amount)
		}
	}
	return total, nil
}

// RemittanceRepository

type fakeRemittanceRepo struct {
	store *fakeStore
}

func (r *fakeRemittanceRepo) Create(ctx context.Context, rem remittance.Remittance) (remittance.Remittance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rem.ID = r.store.newID("remittance")
	rem.CreatedAt = time.Now()
	r.store.remittances = append(r.store.remittances, rem)
	return rem, nil
}

func (r *fakeRemittanceRepo) CreateItem(ctx context.Context, item remittance.RemittanceItem) (remittance.RemittanceItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.failCreateItem {
		return remittance.RemittanceItem{}, fmt.Errorf("insert failed")
	}

	item.ID = r.store.newID("item")
	item.CreatedAt = time.Now()
	r.store.items = append(r.store.items, item)
	return item, nil
}

func (r *fakeRemittanceRepo) GetByID(ctx context.Context, id string) (remittance.Remittance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rem := range r.store.remittances {
		if rem.ID == id {
			for _, item := range r.store.items {
				if item.RemittanceID == id {
					rem.Items = append(rem.Items, item)
				}
			}
			return rem, nil
		}
	}
	return remittance.Remittance{}, remittance.ErrRemittanceNotFound
}

func (r *fakeRemittanceRepo) SumRemittedByWorkLog(ctx context.Context, worklogID string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	success := make(map[string]bool)
	for _, rem := range r.store.remittances {
		if rem.Status == remittance.StatusSuccess {
			success[rem.ID] = true
		}
	}

	total := decimal.Zero
	for _, item := range r.store.items {
		if item.WorkLogID == worklogID && success[item.RemittanceID] {
			total = total.Add(item.Amount)
		}
	}
	return total, nil
}

// fakeTxRunner emulates rollback by snapshotting remittance state before fn
// and restoring it when fn fails.
func fakeTxRunner(store *fakeStore) TxRunner {
	return func(ctx context.Context, fn func(txCtx context.Context) error) error {
		store.mu.Lock()
		savedRemittances := make([]remittance.Remittance, len(store.remittances))
		copy(savedRemittances, store.remittances)
		savedItems := make([]remittance.RemittanceItem, len(store.items))
		copy(savedItems, store.items)
		store.mu.Unlock()

		if err := fn(ctx); err != nil {
			store.mu.Lock()
			store.remittances = savedRemittances
			store.items = savedItems
			store.mu.Unlock()
			return err
		}
		return nil
	}
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []any
}

func (p *capturingPublisher) Publish(ctx context.Context, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func newTestService(store *fakeStore) (*SettlementServiceImpl, *capturingPublisher) {
	publisher := &capturingPublisher{}
	svc := &SettlementServiceImpl{
		userRepo:       store,
		worklogRepo:    &fakeWorkLogRepo{store: store},
		remittanceRepo: &fakeRemittanceRepo{store: store},
		calculator:     NewCalculator(&fakeWorkLogRepo{store: store}, &fakeRemittanceRepo{store: store}),
		runInTx:        fakeTxRunner(store),
		publisher:      publisher,
		now:            func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) },
	}
	return svc, publisher
}

var (
	_ user.UserRepository             = (*fakeStore)(nil)
	_ worklog.WorkLogRepository       = (*fakeWorkLogRepo)(nil)
	_ remittance.RemittanceRepository = (*fakeRemittanceRepo)(nil)
)

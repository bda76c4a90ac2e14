package service

import (
	"context"
	"encoding/json"
	"time"

	"parkwise/internal/cache"
	"parkwise/internal/db"
	"parkwise/internal/entities"
	"parkwise/internal/errors"
	"parkwise/internal/repository"
)

// memStore is an in-memory cache.Store for tests. getErr and setErr force
// the corresponding operation to fail; deleted records every key removed.
type memStore struct {
	data    map[string][]byte
	deleted []string
	getErr  error
	setErr  error
	delErr  error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string, dest any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStore) Delete(_ context.Context, keys ...string) error {
	if m.delErr != nil {
		return m.delErr
	}
	for _, k := range keys {
		delete(m.data, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

// fakeReservationRepo serves a fixed slot list and treats the slot ids in
// conflicting as already booked for any window.
type fakeReservationRepo struct {
	slots       []db.Slot
	conflicting map[int]bool
	created     []*db.Reservation
	createErr   error

	updatedStatus db.ReservationStatus
	updateErr     error
	byID          *db.Reservation
	nextID        int
}

func (f *fakeReservationRepo) SlotsForLocation(context.Context, int) ([]db.Slot, error) {
	return f.slots, nil
}

func (f *fakeReservationRepo) Create(_ context.Context, res *db.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.conflicting[res.SlotID] {
		return errors.ErrConflict
	}
	f.nextID++
	res.ID = f.nextID
	f.created = append(f.created, res)
	return nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _, _, _ int, newStatus db.ReservationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedStatus = newStatus
	if f.byID != nil {
		f.byID.Status = newStatus
	}
	return nil
}

func (f *fakeReservationRepo) GetByID(context.Context, int) (*db.Reservation, error) {
	if f.byID == nil {
		return nil, errors.ErrNotFound
	}
	return f.byID, nil
}

type fakeLocationRepo struct {
	loc     *db.Location
	err     error
	created *db.Location
	updated *db.Location
	deleted []int

	gotRefName string
	gotRefID   int
}

func (f *fakeLocationRepo) GetByRef(_ context.Context, name string, id int) (*db.Location, error) {
	f.gotRefName = name
	f.gotRefID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.loc, nil
}

func (f *fakeLocationRepo) CreateWithSlots(_ context.Context, loc *db.Location) error {
	loc.ID = 1
	f.created = loc
	return nil
}

func (f *fakeLocationRepo) Update(_ context.Context, loc *db.Location) error {
	f.updated = loc
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeLocationRepo) List(context.Context) ([]entities.LotSummary, error) {
	return nil, nil
}

type fakePaymentRepo struct {
	ownerID   int
	ownerErr  error
	created   *db.Payment
	createErr error
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *db.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	payment.ID = 10
	f.created = payment
	return nil
}

func (f *fakePaymentRepo) ReservationOwner(context.Context, int) (int, error) {
	if f.ownerErr != nil {
		return 0, f.ownerErr
	}
	return f.ownerID, nil
}

type fakeDashboardRepo struct {
	user      *entities.UserDashboard
	admin     *entities.AdminDashboard
	userCalls int
}

func (f *fakeDashboardRepo) UserDashboard(context.Context, int) (*entities.UserDashboard, error) {
	f.userCalls++
	return f.user, nil
}

func (f *fakeDashboardRepo) AdminDashboard(context.Context) (*entities.AdminDashboard, error) {
	return f.admin, nil
}

func (f *fakeDashboardRepo) LotStats(context.Context) ([]entities.LotStats, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) UserStats(context.Context) (*entities.UserStats, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) FinancialStats(context.Context) (*entities.FinancialStats, error) {
	return nil, nil
}

type fakeJobRepo struct {
	expired   []repository.ExpiredReservation
	marked    []int
	markedErr error
}

func (f *fakeJobRepo) ActivePastEndTime(context.Context) ([]repository.ExpiredReservation, error) {
	return f.expired, nil
}

func (f *fakeJobRepo) MarkCompleted(_ context.Context, ids []int) (int64, error) {
	if f.markedErr != nil {
		return 0, f.markedErr
	}
	f.marked = ids
	return int64(len(ids)), nil
}

type fakeNotifier struct {
	emails []string
	sms    []string
}

func (f *fakeNotifier) NotifyEmail(to, _, _ string) error {
	f.emails = append(f.emails, to)
	return nil
}

func (f *fakeNotifier) NotifySMS(to, _ string) error {
	f.sms = append(f.sms, to)
	return nil
}

var _ cache.Store = (*memStore)(nil)
var _ repository.ReservationRepository = (*fakeReservationRepo)(nil)
var _ repository.LocationRepository = (*fakeLocationRepo)(nil)
var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)
var _ repository.DashboardRepository = (*fakeDashboardRepo)(nil)
var _ repository.JobRepository = (*fakeJobRepo)(nil)
var _ Notifier = (*fakeNotifier)(nil)

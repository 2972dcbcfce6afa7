package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// memStore implements every repository interface the services use on top of
// plain maps. It is not a database: filters and pagination are ignored.
type memStore struct {
	mu          sync.Mutex
	nextID      uint64
	units       map[uint64]entities.Unit
	sites       map[uint64]entities.Site
	bookings    map[uint64]entities.Booking
	maintenance []entities.Maintenance
	faults      map[uint64]entities.Fault
	logs        []entities.AuditLog
	users       map[string]entities.User

	failAudit error
}

type memSnapshot struct {
	nextID      uint64
	units       map[uint64]entities.Unit
	sites       map[uint64]entities.Site
	bookings    map[uint64]entities.Booking
	maintenance []entities.Maintenance
	faults      map[uint64]entities.Fault
	logs        []entities.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		units:    map[uint64]entities.Unit{},
		sites:    map[uint64]entities.Site{},
		bookings: map[uint64]entities.Booking{},
		faults:   map[uint64]entities.Fault{},
		users:    map[string]entities.User{},
	}
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		nextID:      s.nextID,
		units:       copyMap(s.units),
		sites:       copyMap(s.sites),
		bookings:    copyMap(s.bookings),
		maintenance: append([]entities.Maintenance(nil), s.maintenance...),
		faults:      copyMap(s.faults),
		logs:        append([]entities.AuditLog(nil), s.logs...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.units = snap.units
	s.sites = snap.sites
	s.bookings = snap.bookings
	s.maintenance = snap.maintenance
	s.faults = snap.faults
	s.logs = snap.logs
}

func (s *memStore) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUnit(u entities.Unit) entities.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.id()
	if u.Status == "" {
		u.Status = entities.UnitAvailable
	}
	s.units[u.ID] = u
	return u
}

func (s *memStore) addSite(site entities.Site) entities.Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	site.ID = s.id()
	if site.Status == "" {
		site.Status = entities.SiteActive
	}
	s.sites[site.ID] = site
	return site
}

func (s *memStore) unit(id uint64) entities.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units[id]
}

func (s *memStore) booking(id uint64) entities.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id]
}

func (s *memStore) auditActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.logs))
	for _, l := range s.logs {
		out = append(out, l.Action)
	}
	return out
}

// units

func (s *memStore) GetUnits(ctx context.Context, filter types.Filter) ([]entities.Unit, uint64, error) {
	list, err := s.ListAllUnits(ctx)
	return list, uint64(len(list)), err
}

func (s *memStore) ListAllUnits(ctx context.Context) ([]entities.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Unit, 0, len(s.units))
	for _, u := range s.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) FindUnit(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) LockUnit(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Unit, error) {
	return s.FindUnit(ctx, tx, id)
}

func (s *memStore) CreateUnit(ctx context.Context, tx pgx.Tx, unit *entities.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	unit.ID = s.id()
	unit.CreatedAt = time.Now()
	unit.UpdatedAt = unit.CreatedAt
	s.units[unit.ID] = *unit
	return nil
}

func (s *memStore) UpdateUnit(ctx context.Context, tx pgx.Tx, unit *entities.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[unit.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.units[unit.ID] = *unit
	return nil
}

func (s *memStore) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, update repositories.UnitStatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Status = update.Status
	if update.LastMaintenanceAt != nil {
		u.LastMaintenanceAt = update.LastMaintenanceAt
	}
	if update.LastRentalEndAt != nil {
		u.LastRentalEndAt = update.LastRentalEndAt
	}
	s.units[id] = u
	return nil
}

// sites

func (s *memStore) GetSites(ctx context.Context, filter types.Filter) ([]entities.Site, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Site, 0, len(s.sites))
	for _, site := range s.sites {
		out = append(out, site)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, uint64(len(out)), nil
}

func (s *memStore) FindSite(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &site, nil
}

func (s *memStore) CreateSite(ctx context.Context, tx pgx.Tx, site *entities.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	site.ID = s.id()
	s.sites[site.ID] = *site
	return nil
}

func (s *memStore) UpdateSite(ctx context.Context, tx pgx.Tx, site *entities.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[site.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.sites[site.ID] = *site
	return nil
}

// bookings

func (s *memStore) details(b entities.Booking) entities.BookingDetails {
	u := s.units[b.UnitID]
	site := s.sites[b.SiteID]
	return entities.BookingDetails{
		Booking:     b,
		UnitCode:    u.Code,
		UnitFamily:  u.Family,
		ProjectLead: site.ProjectLead,
		SiteAddress: site.Address,
	}
}

func (s *memStore) GetBookings(ctx context.Context, filter types.Filter) ([]entities.BookingDetails, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.BookingDetails, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, s.details(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, uint64(len(out)), nil
}

func (s *memStore) ListOngoingBookings(ctx context.Context) ([]entities.BookingDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.BookingDetails, 0)
	for _, b := range s.bookings {
		if b.Status == entities.BookingOngoing {
			out = append(out, s.details(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) LockBooking(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (s *memStore) HasOverlap(ctx context.Context, tx pgx.Tx, unitID uint64, start, end time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.UnitID != unitID || b.Status != entities.BookingOngoing {
			continue
		}
		existingEnd := b.Start
		if b.End != nil {
			existingEnd = *b.End
		}
		if !b.Start.After(end) && !existingEnd.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CreateBooking(ctx context.Context, tx pgx.Tx, booking *entities.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking.ID = s.id()
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *memStore) CloseBooking(ctx context.Context, tx pgx.Tx, booking *entities.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.bookings[booking.ID] = *booking
	return nil
}

// maintenance

func (s *memStore) GetMaintenance(ctx context.Context, filter types.Filter) ([]entities.MaintenanceDetails, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.MaintenanceDetails, 0, len(s.maintenance))
	for _, m := range s.maintenance {
		u := s.units[m.UnitID]
		out = append(out, entities.MaintenanceDetails{Maintenance: m, UnitCode: u.Code, UnitFamily: u.Family})
	}
	return out, uint64(len(out)), nil
}

func (s *memStore) CreateMaintenance(ctx context.Context, tx pgx.Tx, event *entities.Maintenance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = s.id()
	s.maintenance = append(s.maintenance, *event)
	return nil
}

// faults

func (s *memStore) GetFaults(ctx context.Context, filter types.Filter) ([]entities.FaultDetails, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.FaultDetails, 0, len(s.faults))
	for _, f := range s.faults {
		out = append(out, entities.FaultDetails{Fault: f, UnitCode: s.units[f.UnitID].Code})
	}
	return out, uint64(len(out)), nil
}

func (s *memStore) LockFault(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Fault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.faults[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &f, nil
}

func (s *memStore) CreateFault(ctx context.Context, tx pgx.Tx, fault *entities.Fault) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fault.ID = s.id()
	s.faults[fault.ID] = *fault
	return nil
}

func (s *memStore) ResolveFault(ctx context.Context, tx pgx.Tx, id uint64, resolvedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.faults[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	f.Status = entities.FaultResolved
	f.ResolvedAt = &resolvedAt
	s.faults[id] = f
	return nil
}

// audit

func (s *memStore) CreateLog(ctx context.Context, tx pgx.Tx, entry *entities.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAudit != nil {
		return s.failAudit
	}
	entry.ID = s.id()
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *memStore) GetLatestLogs(ctx context.Context, limit int) ([]entities.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.AuditLog, 0, limit)
	for i := len(s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.logs[i])
	}
	return out, nil
}

// stats

func (s *memStore) CountUnitsByStatus(ctx context.Context) (*types.UnitCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := &types.UnitCounts{}
	for _, u := range s.units {
		counts.Total++
		switch u.Status {
		case entities.UnitAvailable:
			counts.Available++
		case entities.UnitRented:
			counts.Rented++
		case entities.UnitMaintenance:
			counts.Maintenance++
		case entities.UnitFaulted:
			counts.Faulted++
		}
	}
	return counts, nil
}

func (s *memStore) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, b := range s.bookings {
		if b.Status != entities.BookingCancelled {
			total = total.Add(b.TotalCost)
		}
	}
	return total, nil
}

func (s *memStore) TotalMaintenanceCost(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, m := range s.maintenance {
		total = total.Add(m.Cost)
	}
	return total, nil
}

func (s *memStore) MaintenanceCostByFamily(ctx context.Context) ([]types.FamilyCost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	totals := map[string]decimal.Decimal{}
	for _, m := range s.maintenance {
		family := s.units[m.UnitID].Family
		totals[family] = totals[family].Add(m.Cost)
	}
	out := make([]types.FamilyCost, 0, len(totals))
	for family, total := range totals {
		out = append(out, types.FamilyCost{Family: family, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Family < out[j].Family })
	return out, nil
}

// users

func (s *memStore) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) UpsertUser(ctx context.Context, tx pgx.Tx, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.id()
	s.users[user.Username] = *user
	return nil
}

// memTxManager serializes transactions the way the unit row lock does and
// rolls the store back when fn fails.
type memTxManager struct {
	txMu  sync.Mutex
	store *memStore
}

func (m *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	snap := m.store.snapshot()
	if err := fn(ctx, nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func (m *memTxManager) RunQuery(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sentNotification struct {
	Message string
	Kind    entities.NotificationType
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Notify(ctx context.Context, message string, kind entities.NotificationType) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{Message: message, Kind: kind})
}

func (n *recordingNotifier) messages() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

type fixture struct {
	store    *memStore
	tx       *memTxManager
	notifier *recordingNotifier
	base     *BaseService
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	f := &fixture{
		store:    store,
		tx:       &memTxManager{store: store},
		notifier: &recordingNotifier{},
		clock:    time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
	}
	f.base = NewBaseService(f.tx, store, f.notifier, zap.NewNop())
	f.base.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) bookings() BookingServiceInterface {
	return NewBookingService(f.base, f.store, f.store, f.store)
}

func (f *fixture) maintenance() MaintenanceServiceInterface {
	return NewMaintenanceService(f.base, f.store, f.store, DefaultTariffs())
}

func (f *fixture) faults() FaultServiceInterface {
	return NewFaultService(f.base, f.store, f.store)
}

func (f *fixture) stats() *StatsService {
	s := NewStatsService(f.tx, f.store, f.store, f.store, zap.NewNop()).(*StatsService)
	s.now = func() time.Time { return f.clock }
	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *types.Date {
	v := types.NewDate(date(y, m, d))
	return &v
}

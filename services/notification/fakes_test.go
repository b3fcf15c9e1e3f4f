package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coachly/database/repository"
	notificationRepo "coachly/database/repository/notification"
	"coachly/models"
)

// memNotificationRepo is an in-memory NotificationRepository mirroring the
// Mongo implementation's lifecycle semantics.
type memNotificationRepo struct {
	mu        sync.Mutex
	items     map[string]*models.Notification
	createErr error
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{items: make(map[string]*models.Notification)}
}

func (r *memNotificationRepo) Create(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	cp := *n
	r.items[n.ID] = &cp
	return nil
}

func (r *memNotificationRepo) GetByID(id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("notification %s: %w", id, repository.ErrNotFound)
	}
	cp := *n
	return &cp, nil
}

func (r *memNotificationRepo) GetOwned(id, recipient string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owned(id, recipient)
}

func (r *memNotificationRepo) owned(id, recipient string) (*models.Notification, error) {
	n, ok := r.items[id]
	if !ok || n.Recipient != recipient {
		return nil, fmt.Errorf("notification %s: %w", id, repository.ErrNotFound)
	}
	cp := *n
	return &cp, nil
}

func (r *memNotificationRepo) List(recipient string, opts notificationRepo.ListOptions) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.items {
		if n.Recipient != recipient || n.Status != opts.Status {
			continue
		}
		if opts.Unread != nil && n.IsRead == *opts.Unread {
			continue
		}
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (r *memNotificationRepo) UnreadCount(recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.Recipient == recipient && n.Status == models.NotificationStatusActive && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) FindRecentByTypeAndRef(notifType, refField, refValue string, since time.Time) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var newest *models.Notification
	for _, n := range r.items {
		if n.Type != notifType || n.CreatedAt.Before(since) {
			continue
		}
		var ref string
		switch refField {
		case "bookingId":
			ref = n.Metadata.BookingID
		case "paymentId":
			ref = n.Metadata.PaymentID
		}
		if ref != refValue {
			continue
		}
		if newest == nil || n.CreatedAt.After(newest.CreatedAt) {
			newest = n
		}
	}
	if newest == nil {
		return nil, fmt.Errorf("no recent %s: %w", notifType, repository.ErrNotFound)
	}
	cp := *newest
	return &cp, nil
}

func (r *memNotificationRepo) mutate(id, recipient string, fn func(*models.Notification)) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.Recipient != recipient {
		return nil, fmt.Errorf("notification %s: %w", id, repository.ErrNotFound)
	}
	fn(n)
	n.UpdatedAt = time.Now()
	cp := *n
	return &cp, nil
}

func (r *memNotificationRepo) MarkRead(id, recipient string) (*models.Notification, error) {
	return r.mutate(id, recipient, func(n *models.Notification) {
		now := time.Now()
		n.IsRead = true
		n.ReadAt = &now
	})
}

func (r *memNotificationRepo) MarkReadBatch(ids []string, recipient string) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, err := r.MarkRead(id, recipient); err == nil {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) Trash(id, recipient string) (*models.Notification, error) {
	return r.mutate(id, recipient, func(n *models.Notification) {
		now := time.Now()
		expires := now.Add(models.TrashRetention)
		n.Status = models.NotificationStatusTrash
		n.TrashedAt = &now
		n.ExpiresAt = &expires
	})
}

func (r *memNotificationRepo) Restore(id, recipient string) (*models.Notification, error) {
	return r.mutate(id, recipient, func(n *models.Notification) {
		now := time.Now()
		n.Status = models.NotificationStatusActive
		n.TrashedAt = nil
		n.ExpiresAt = nil
		n.RestoredAt = &now
	})
}

func (r *memNotificationRepo) Archive(id, recipient string) (*models.Notification, error) {
	return r.mutate(id, recipient, func(n *models.Notification) {
		n.Status = models.NotificationStatusArchived
	})
}

func (r *memNotificationRepo) Activate(id, recipient string) (*models.Notification, error) {
	return r.mutate(id, recipient, func(n *models.Notification) {
		n.Status = models.NotificationStatusActive
	})
}

func (r *memNotificationRepo) MarkActioned(id, recipient string) (*models.Notification, error) {
	return r.mutate(id, recipient, func(n *models.Notification) {
		now := time.Now()
		n.Status = models.NotificationStatusActioned
		n.ActionedAt = &now
	})
}

func (r *memNotificationRepo) TrashBatch(ids []string, recipient string) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, err := r.Trash(id, recipient); err == nil {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) EmptyTrash(recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	now := time.Now()
	for _, n := range r.items {
		if n.Recipient == recipient && n.Status == models.NotificationStatusTrash {
			n.Status = models.NotificationStatusDeleted
			n.DeletedAt = &now
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) SweepExpiredTrash(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.Status == models.NotificationStatusTrash && n.ExpiresAt != nil && !n.ExpiresAt.After(now) {
			n.Status = models.NotificationStatusDeleted
			n.DeletedAt = &now
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) AppendDeliveryRecord(id string, rec models.DeliveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return fmt.Errorf("notification %s: %w", id, repository.ErrNotFound)
	}
	now := time.Now()
	n.Delivery.Records = append(n.Delivery.Records, rec)
	n.Delivery.Attempts++
	n.Delivery.LastAttempt = &now
	return nil
}

// fakeRealtime records emitted events.
type fakeRealtime struct {
	mu     sync.Mutex
	events []fakeEvent
}

type fakeEvent struct {
	UserID  string
	Event   string
	Payload any
}

func (f *fakeRealtime) EmitToUser(userID, event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, fakeEvent{UserID: userID, Event: event, Payload: payload})
	return nil
}

func (f *fakeRealtime) eventNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.events))
	for i, e := range f.events {
		names[i] = e.Event
	}
	return names
}

// fakeChannel counts deliveries and optionally fails every one.
type fakeChannel struct {
	name      string
	err       error
	mu        sync.Mutex
	delivered []string
}

func (ch *fakeChannel) Name() string { return ch.name }

func (ch *fakeChannel) Deliver(_ context.Context, n *models.Notification, _ Context) error {
	ch.mu.Lock()
	ch.delivered = append(ch.delivered, n.ID)
	ch.mu.Unlock()
	return ch.err
}

func (ch *fakeChannel) count() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.delivered)
}

// fakeBookingRepo, fakePaymentRepo and fakeProgramRepo back the context
// resolver in tests.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := r.bookings[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
}

type fakePaymentRepo struct {
	payments  map[string]*models.Payment
	byBooking map[string]*models.Payment
}

func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error) {
	if p, ok := r.payments[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("payment %s: %w", id, repository.ErrNotFound)
}

func (r *fakePaymentRepo) GetByBookingID(bookingID string) (*models.Payment, error) {
	if p, ok := r.byBooking[bookingID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("payment for booking %s: %w", bookingID, repository.ErrNotFound)
}

type fakeProgramRepo struct {
	programs map[string]*models.Program
}

func (r *fakeProgramRepo) GetByID(id string) (*models.Program, error) {
	if p, ok := r.programs[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("program %s: %w", id, repository.ErrNotFound)
}

func testResolver(bookings map[string]*models.Booking, payments *fakePaymentRepo, programs map[string]*models.Program) *ContextResolver {
	if payments == nil {
		payments = &fakePaymentRepo{}
	}
	return &ContextResolver{
		Bookings: &fakeBookingRepo{bookings: bookings},
		Payments: payments,
		Programs: &fakeProgramRepo{programs: programs},
	}
}

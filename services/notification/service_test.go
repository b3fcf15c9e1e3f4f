package notification

import (
	"testing"
	"time"

	"coachly/database/repository"
	notificationRepo "coachly/database/repository/notification"
	"coachly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testService(repo *memNotificationRepo, rt *fakeRealtime) *DefaultNotificationService {
	return &DefaultNotificationService{
		Repo:     repo,
		Realtime: rt,
		Logger:   zap.NewNop(),
	}
}

func seedNotification(repo *memNotificationRepo, id, recipient, status string) *models.Notification {
	n := &models.Notification{
		ID:        id,
		Recipient: recipient,
		Type:      TypeBookingConfirmed,
		Category:  CategoryBooking,
		Priority:  PriorityHigh,
		Title:     "t",
		Message:   "m",
		Channels:  []string{models.ChannelInApp},
		Status:    status,
	}
	_ = repo.Create(n)
	return n
}

func TestTrashSetsThirtyDayExpiry(t *testing.T) {
	repo := newMemNotificationRepo()
	rt := &fakeRealtime{}
	svc := testService(repo, rt)
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)

	n, err := svc.UpdateStatus("user-1", "n1", models.NotificationStatusTrash)
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusTrash, n.Status)
	require.NotNil(t, n.TrashedAt)
	require.NotNil(t, n.ExpiresAt)
	assert.WithinDuration(t, n.TrashedAt.Add(models.TrashRetention), *n.ExpiresAt, time.Second)
	assert.Contains(t, rt.eventNames(), EventStatusChanged)
}

func TestRestoreFromTrashClearsRetentionFields(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := testService(repo, &fakeRealtime{})
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)

	_, err := svc.UpdateStatus("user-1", "n1", models.NotificationStatusTrash)
	require.NoError(t, err)

	n, err := svc.UpdateStatus("user-1", "n1", models.NotificationStatusActive)
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusActive, n.Status)
	assert.Nil(t, n.TrashedAt)
	assert.Nil(t, n.ExpiresAt)
	assert.NotNil(t, n.RestoredAt)
}

func TestUpdateStatusArchiveAndBack(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := testService(repo, &fakeRealtime{})
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)

	n, err := svc.UpdateStatus("user-1", "n1", models.NotificationStatusArchived)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusArchived, n.Status)

	n, err = svc.UpdateStatus("user-1", "n1", models.NotificationStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusActive, n.Status)
	// Reactivating an archived notification is not a trash restore.
	assert.Nil(t, n.RestoredAt)
}

func TestUpdateStatusRejectsUnsupportedTarget(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := testService(repo, &fakeRealtime{})
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)

	_, err := svc.UpdateStatus("user-1", "n1", models.NotificationStatusDeleted)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestUpdateStatusScopedToRecipient(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := testService(repo, &fakeRealtime{})
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)

	_, err := svc.UpdateStatus("someone-else", "n1", models.NotificationStatusTrash)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMarkActionedIsIdempotent(t *testing.T) {
	repo := newMemNotificationRepo()
	rt := &fakeRealtime{}
	svc := testService(repo, rt)
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)

	first, err := svc.MarkActioned("user-1", "n1")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusActioned, first.Status)
	require.NotNil(t, first.ActionedAt)

	second, err := svc.MarkActioned("user-1", "n1")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusActioned, second.Status)
	assert.WithinDuration(t, *first.ActionedAt, *second.ActionedAt, time.Millisecond)

	// Only the first invocation emits an event.
	events := 0
	for _, name := range rt.eventNames() {
		if name == EventStatusUpdated {
			events++
		}
	}
	assert.Equal(t, 1, events)
}

func TestMarkReadDoesNotTouchStatus(t *testing.T) {
	repo := newMemNotificationRepo()
	rt := &fakeRealtime{}
	svc := testService(repo, rt)
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)

	n, err := svc.MarkRead("user-1", "n1")
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.NotNil(t, n.ReadAt)
	assert.Equal(t, models.NotificationStatusActive, n.Status)
	assert.Contains(t, rt.eventNames(), EventRead)
}

func TestMarkReadBatchCountsOnlyOwned(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := testService(repo, &fakeRealtime{})
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)
	seedNotification(repo, "n2", "user-1", models.NotificationStatusActive)
	seedNotification(repo, "n3", "someone-else", models.NotificationStatusActive)

	count, err := svc.MarkReadBatch("user-1", []string{"n1", "n2", "n3", "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTrashBatchAndEmptyTrash(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := testService(repo, &fakeRealtime{})
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)
	seedNotification(repo, "n2", "user-1", models.NotificationStatusActive)
	seedNotification(repo, "n3", "user-1", models.NotificationStatusActive)

	count, err := svc.TrashBatch("user-1", []string{"n1", "n2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	deleted, err := svc.EmptyTrash("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	n, err := repo.GetByID("n1")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusDeleted, n.Status)
	assert.True(t, n.Terminal())

	// The untouched notification stays active.
	n, err = repo.GetByID("n3")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusActive, n.Status)
}

func TestSweepExpiredTrashFlipsOnlyExpired(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := testService(repo, &fakeRealtime{})
	seedNotification(repo, "old", "user-1", models.NotificationStatusActive)
	seedNotification(repo, "fresh", "user-1", models.NotificationStatusActive)

	_, err := svc.TrashBatch("user-1", []string{"old", "fresh"})
	require.NoError(t, err)

	// Age one past its retention deadline.
	repo.mu.Lock()
	expired := time.Now().Add(-time.Hour)
	repo.items["old"].ExpiresAt = &expired
	repo.mu.Unlock()

	count, err := svc.SweepExpiredTrash()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	n, err := repo.GetByID("old")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusDeleted, n.Status)

	n, err = repo.GetByID("fresh")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusTrash, n.Status)
}

func TestListAndUnreadCount(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := testService(repo, &fakeRealtime{})
	seedNotification(repo, "n1", "user-1", models.NotificationStatusActive)
	seedNotification(repo, "n2", "user-1", models.NotificationStatusActive)
	seedNotification(repo, "n3", "user-1", models.NotificationStatusArchived)

	items, total, err := svc.List("user-1", notificationRepo.ListOptions{
		Status: models.NotificationStatusActive, Page: 1, PerPage: 20,
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), total)

	count, err := svc.UnreadCount("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.MarkRead("user-1", "n1")
	require.NoError(t, err)

	count, err = svc.UnreadCount("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

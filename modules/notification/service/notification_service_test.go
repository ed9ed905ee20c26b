package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gestimmo-api/core/params"
	"gestimmo-api/core/tasks"
	"gestimmo-api/modules/notification/entity"

	"github.com/google/uuid"
)

type fakeNotificationRepo struct {
	created   []entity.Notification
	createErr map[uuid.UUID]error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	if err := f.createErr[n.UserID]; err != nil {
		return err
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(_ context.Context, _ uuid.UUID, _ params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return &entity.PaginatedNotificationEntity{}, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, _ uuid.UUID, _ []string) error {
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func matchPayload(userIDs ...uuid.UUID) tasks.MatchNotificationPayload {
	return tasks.MatchNotificationPayload{
		InterventionID: uuid.New(),
		UserIDs:        userIDs,
		Date:           "2025-06-10",
		StartTime:      "09:00",
		EndTime:        "13:00",
	}
}

func TestHandleMatchNotificationFansOut(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	tenant, provider, manager := uuid.New(), uuid.New(), uuid.New()
	p := matchPayload(tenant, provider, manager)

	if err := svc.HandleMatchNotification(context.Background(), p); err != nil {
		t.Fatalf("HandleMatchNotification: %v", err)
	}

	if len(repo.created) != 3 {
		t.Fatalf("created = %d notifications, want 3", len(repo.created))
	}

	for _, n := range repo.created {
		if n.Type != entity.NotificationTypeMatch {
			t.Errorf("Type = %q, want %q", n.Type, entity.NotificationTypeMatch)
		}
		if !strings.Contains(n.Message, "2025-06-10") || !strings.Contains(n.Message, "09:00") {
			t.Errorf("Message = %q, want the scheduled slot", n.Message)
		}
		if n.Data["intervention_id"] != p.InterventionID.String() {
			t.Errorf("Data intervention_id = %v, want %s", n.Data["intervention_id"], p.InterventionID)
		}
		if n.IsRead {
			t.Error("new notifications must start unread")
		}
	}
}

func TestHandleMatchNotificationContinuesPastFailures(t *testing.T) {
	tenant, provider := uuid.New(), uuid.New()

	repo := &fakeNotificationRepo{
		createErr: map[uuid.UUID]error{tenant: errors.New("insert failed")},
	}
	svc := NewNotificationService(repo)

	err := svc.HandleMatchNotification(context.Background(), matchPayload(tenant, provider))
	if err == nil {
		t.Fatal("expected the first failure to be reported")
	}

	// The second recipient still got their notification.
	if len(repo.created) != 1 {
		t.Fatalf("created = %d notifications, want 1", len(repo.created))
	}
	if repo.created[0].UserID != provider {
		t.Errorf("created for %s, want %s", repo.created[0].UserID, provider)
	}
}

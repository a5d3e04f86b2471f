package announcement

import (
	"context"
	"errors"
	"sync"
	"testing"

	"campusnews/models"

	"go.uber.org/zap"
)

type fakeAnnouncementRepo struct {
	mu      sync.Mutex
	created []models.Announcement
	err     error
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, a models.Announcement) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, a)
	return "ann-1", nil
}

func (f *fakeAnnouncementRepo) GetByChannel(ctx context.Context, channelID int64) ([]models.Announcement, error) {
	return nil, nil
}

type fakeRegistry struct {
	recipients []models.PushRecipient
	err        error
}

func (f *fakeRegistry) Subscribe(ctx context.Context, d models.Device) error { return nil }
func (f *fakeRegistry) Unsubscribe(ctx context.Context, channelID int64, token string) error {
	return nil
}
func (f *fakeRegistry) RecipientsForChannel(ctx context.Context, channelID int64) ([]models.PushRecipient, error) {
	return f.recipients, f.err
}

type pushCall struct {
	pushType   models.PushType
	recipients []models.PushRecipient
	id1        int64
}

type fakePush struct {
	mu    sync.Mutex
	calls []pushCall
}

func (f *fakePush) RequestNotification(pushType models.PushType, recipients []models.PushRecipient, id1 int64, id2, id3 *int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pushCall{pushType, recipients, id1})
}

func TestCreatePersistsThenPushes(t *testing.T) {
	repo := &fakeAnnouncementRepo{}
	registry := &fakeRegistry{recipients: []models.PushRecipient{{Platform: models.PlatformAndroid, Token: "tok"}}}
	pusher := &fakePush{}
	s := &DefaultAnnouncementService{Repo: repo, Devices: registry, Push: pusher, Logger: zap.NewNop()}

	id, err := s.Create(context.Background(), models.Announcement{ChannelID: 5, Title: "t", Text: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "ann-1" {
		t.Fatalf("id = %q", id)
	}
	if len(pusher.calls) != 1 {
		t.Fatalf("expected one push request, got %d", len(pusher.calls))
	}
	call := pusher.calls[0]
	if call.pushType != models.PushAnnouncementNew || call.id1 != 5 || len(call.recipients) != 1 {
		t.Fatalf("unexpected push request %+v", call)
	}
}

func TestCreateSurvivesRecipientLookupFailure(t *testing.T) {
	repo := &fakeAnnouncementRepo{}
	registry := &fakeRegistry{err: errors.New("redis down")}
	pusher := &fakePush{}
	s := &DefaultAnnouncementService{Repo: repo, Devices: registry, Push: pusher, Logger: zap.NewNop()}

	id, err := s.Create(context.Background(), models.Announcement{ChannelID: 5})
	if err != nil {
		t.Fatalf("Create must succeed despite lookup failure, got %v", err)
	}
	if id == "" {
		t.Fatal("missing announcement id")
	}
	if len(pusher.calls) != 0 {
		t.Fatal("no push should be requested when recipients are unknown")
	}
}

func TestCreateFailsWhenPersistFails(t *testing.T) {
	repo := &fakeAnnouncementRepo{err: errors.New("mongo down")}
	pusher := &fakePush{}
	s := &DefaultAnnouncementService{Repo: repo, Devices: &fakeRegistry{}, Push: pusher, Logger: zap.NewNop()}

	if _, err := s.Create(context.Background(), models.Announcement{ChannelID: 5}); err == nil {
		t.Fatal("expected persistence failure to surface")
	}
	if len(pusher.calls) != 0 {
		t.Fatal("no push may happen for an unpersisted announcement")
	}
}

func TestCreateFromReminderCopiesPayloadFields(t *testing.T) {
	repo := &fakeAnnouncementRepo{}
	registry := &fakeRegistry{}
	pusher := &fakePush{}
	s := &DefaultAnnouncementService{Repo: repo, Devices: registry, Push: pusher, Logger: zap.NewNop()}

	rem := &models.Reminder{
		ID:          9,
		ChannelID:   4,
		ModeratorID: 2,
		Title:       "Lecture",
		Text:        "Starts at noon",
		Priority:    1,
	}
	if _, err := s.CreateFromReminder(context.Background(), rem); err != nil {
		t.Fatalf("CreateFromReminder: %v", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted announcement, got %d", len(repo.created))
	}
	got := repo.created[0]
	if got.ChannelID != 4 || got.ModeratorID != 2 || got.Title != "Lecture" || got.Text != "Starts at noon" || got.Priority != 1 || got.ReminderID != 9 {
		t.Fatalf("announcement fields not copied from reminder: %+v", got)
	}
}

package reminders

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenamekii/Jobless/internal/shared"
	_ "github.com/codenamekii/Jobless/testing"
)

type fakeRepo struct {
	ownedApps map[uuid.UUID]uuid.UUID
	items     map[uuid.UUID]*Reminder
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		ownedApps: make(map[uuid.UUID]uuid.UUID),
		items:     make(map[uuid.UUID]*Reminder),
	}
}

func (f *fakeRepo) List(ctx context.Context, userID uuid.UUID, completed *bool) ([]ListItem, error) {
	var out []ListItem
	for _, rm := range f.items {
		if f.ownedApps[rm.ApplicationID] != userID {
			continue
		}
		if completed != nil && rm.IsCompleted != *completed {
			continue
		}
		out = append(out, ListItem{Reminder: *rm})
	}
	return out, nil
}

func (f *fakeRepo) Create(ctx context.Context, userID uuid.UUID, reminder *Reminder) error {
	if f.ownedApps[reminder.ApplicationID] != userID {
		return shared.ErrNotFound
	}
	reminder.CreatedAt = time.Now()
	clone := *reminder
	f.items[reminder.ID] = &clone
	return nil
}

func (f *fakeRepo) Complete(ctx context.Context, userID, id uuid.UUID) error {
	rm, ok := f.items[id]
	if !ok || f.ownedApps[rm.ApplicationID] != userID {
		return shared.ErrNotFound
	}
	rm.IsCompleted = true
	return nil
}

func (f *fakeRepo) ListDue(ctx context.Context, cutoff time.Time) ([]DueReminder, error) {
	return nil, nil
}

func (f *fakeRepo) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	return nil
}

var _ Repository = (*fakeRepo)(nil)

type statsRecorder struct {
	invalidated []uuid.UUID
}

func (s *statsRecorder) Invalidate(ctx context.Context, userID uuid.UUID) error {
	s.invalidated = append(s.invalidated, userID)
	return nil
}

func newServer(t *testing.T, repo Repository, userID uuid.UUID) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo, nil))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := shared.ContextWithIdentity(req.Context(), shared.Identity{UserID: userID})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/reminders", handler.MountRoutes)
	return r
}

func TestCreateAndCompleteReminder(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	repo := newFakeRepo()
	repo.ownedApps[appID] = userID
	server := newServer(t, repo, userID)

	body, _ := json.Marshal(map[string]any{
		"applicationId": appID,
		"title":         "Follow up",
		"reminderDate":  time.Now().Add(24 * time.Hour),
	})
	req := httptest.NewRequest(http.MethodPost, "/reminders/", bytes.NewReader(body))
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)
	require.Equal(t, http.StatusCreated, res.Code)

	var env struct {
		Success bool     `json:"success"`
		Data    Reminder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.True(t, env.Success)

	req = httptest.NewRequest(http.MethodPatch, "/reminders/"+env.Data.ID.String()+"/complete", nil)
	res = httptest.NewRecorder()
	server.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, repo.items[env.Data.ID].IsCompleted)
}

func TestCreateReminderForeignApplication(t *testing.T) {
	repo := newFakeRepo()
	server := newServer(t, repo, uuid.New())

	body, _ := json.Marshal(map[string]any{
		"applicationId": uuid.New(),
		"title":         "Follow up",
		"reminderDate":  time.Now().Add(24 * time.Hour),
	})
	req := httptest.NewRequest(http.MethodPost, "/reminders/", bytes.NewReader(body))
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestCreateReminderValidation(t *testing.T) {
	userID := uuid.New()
	server := newServer(t, newFakeRepo(), userID)

	body, _ := json.Marshal(map[string]any{"title": "no application"})
	req := httptest.NewRequest(http.MethodPost, "/reminders/", bytes.NewReader(body))
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestReminderWritesDropCachedStats(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	repo := newFakeRepo()
	repo.ownedApps[appID] = userID
	stats := &statsRecorder{}
	svc := NewService(repo, stats)
	ctx := context.Background()

	rm, err := svc.Create(ctx, userID, appID, "Follow up", "", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, stats.invalidated, 1)
	assert.Equal(t, userID, stats.invalidated[0])

	require.NoError(t, svc.Complete(ctx, userID, rm.ID))
	require.Len(t, stats.invalidated, 2)

	// A rejected write leaves the cache alone.
	_, err = svc.Create(ctx, uuid.New(), appID, "peek", "", time.Now().Add(time.Hour))
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Len(t, stats.invalidated, 2)
}

func TestListRemindersFilter(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	repo := newFakeRepo()
	repo.ownedApps[appID] = userID

	done := &Reminder{ID: uuid.New(), ApplicationID: appID, Title: "done", IsCompleted: true}
	open := &Reminder{ID: uuid.New(), ApplicationID: appID, Title: "open"}
	repo.items[done.ID] = done
	repo.items[open.ID] = open

	server := newServer(t, repo, userID)

	req := httptest.NewRequest(http.MethodGet, "/reminders/?isCompleted=false", nil)
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	var env struct {
		Data  []ListItem `json:"data"`
		Total int        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "open", env.Data[0].Title)

	req = httptest.NewRequest(http.MethodGet, "/reminders/?isCompleted=banana", nil)
	res = httptest.NewRecorder()
	server.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

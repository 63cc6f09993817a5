package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ennichirag3/blue-carbon-frontend/internal/logging"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

func validInput() domain.FormInput {
	return domain.FormInput{
		Name:        "Mangrove belt",
		Description: "Coastal replanting",
		Location:    "Mombasa",
		CarbonSaved: "40",
	}
}

func TestLoad_RendersCardsAndCounters(t *testing.T) {
	store := &fakeStore{projects: []domain.Project{
		{ID: "a", Name: "Kelp forest", CarbonSaved: 5},
		{ID: "b", Description: "", CarbonSaved: 3},
		{ID: "c", Name: "Peat", Location: "Borneo"},
	}}
	view := &recordingView{}
	sc := NewSyncClient(store, view)

	require.NoError(t, sc.Load(context.Background()))

	screen := view.last()
	assert.Equal(t, StateListed, screen.State)
	assert.Equal(t, "3", screen.CountText())
	assert.Equal(t, "8", screen.CarbonText())
	require.Len(t, screen.Cards, 3)

	assert.Equal(t, "Kelp forest", screen.Cards[0].Name)
	assert.Equal(t, DefaultName, screen.Cards[1].Name)
	assert.Equal(t, DefaultDescription, screen.Cards[1].Description)
	assert.Equal(t, DefaultLocation, screen.Cards[1].Location)
	assert.Equal(t, "Borneo", screen.Cards[2].Location)
	assert.Equal(t, "0", screen.Cards[2].CarbonText())
}

func TestLoad_EmptyCollectionIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	view := &recordingView{}
	sc := NewSyncClient(store, view)

	require.NoError(t, sc.Load(context.Background()))
	require.NoError(t, sc.Load(context.Background()))

	require.Len(t, view.screens, 2)
	assert.Equal(t, view.screens[0], view.screens[1])
	assert.Equal(t, StateEmpty, view.screens[0].State)
	assert.Equal(t, PlaceholderEmpty, view.screens[0].Placeholder)
	assert.Equal(t, "0", view.screens[0].CountText())
	assert.Equal(t, "0", view.screens[0].CarbonText())
	assert.Empty(t, view.screens[0].Cards)
}

func TestLoad_FailureRendersPlaceholderAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := &fakeStore{listErr: fmt.Errorf("list projects: %w", domain.ErrNetwork)}
	view := &recordingView{}
	sc := NewSyncClient(store, view, WithLogger(logging.FromZap(zap.New(core))))

	err := sc.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)

	screen := view.last()
	assert.Equal(t, StateFailed, screen.State)
	assert.Equal(t, PlaceholderFailed, screen.Placeholder)
	assert.Equal(t, "0", screen.CountText())
	assert.Equal(t, "0", screen.CarbonText())
	assert.Equal(t, 1, logs.FilterField(zap.String("operation", "load_projects")).Len())
}

func TestLoad_TimeoutHasItsOwnPlaceholder(t *testing.T) {
	store := &fakeStore{listErr: fmt.Errorf("list projects: %w", domain.ErrTimeout)}
	view := &recordingView{}

	_ = NewSyncClient(store, view).Load(context.Background())
	assert.Equal(t, PlaceholderTimedOut, view.last().Placeholder)
}

func TestCreate_ValidationNeverCallsStore(t *testing.T) {
	cases := map[string]func(*domain.FormInput){
		"empty name":        func(in *domain.FormInput) { in.Name = "  " },
		"empty description": func(in *domain.FormInput) { in.Description = "" },
		"empty location":    func(in *domain.FormInput) { in.Location = "\t" },
		"empty carbon":      func(in *domain.FormInput) { in.CarbonSaved = "" },
		"non-numeric":       func(in *domain.FormInput) { in.CarbonSaved = "lots" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := &fakeStore{}
			view := &recordingView{}
			in := validInput()
			mutate(&in)

			err := NewSyncClient(store, view).Create(context.Background(), in)

			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
			list, create, del := store.calls()
			assert.Zero(t, list+create+del)
			assert.Equal(t, Notice{Level: NoticeWarning, Text: MsgInvalidInput}, view.lastNotice())
			assert.Zero(t, view.resets)
		})
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	store := &fakeStore{}
	view := &recordingView{}
	sc := NewSyncClient(store, view)

	require.NoError(t, sc.Create(context.Background(), validInput()))

	list, create, _ := store.calls()
	assert.Equal(t, 1, create)
	assert.Equal(t, 1, list)
	assert.Equal(t, 1, view.resets)
	assert.Equal(t, Notice{Level: NoticeSuccess, Text: MsgCreated}, view.notices[0])

	screen := view.last()
	require.Len(t, screen.Cards, 1)
	assert.Equal(t, "bluecarbon-00001-0000", screen.Cards[0].ID)
	assert.Equal(t, "Mangrove belt", screen.Cards[0].Name)
	assert.Equal(t, "40", screen.CarbonText())
}

func TestCreate_ServerRejectionIsIsolated(t *testing.T) {
	store := &fakeStore{createErr: fmt.Errorf("create project: %w", &domain.RemoteError{Status: 409, Message: "conflict"})}
	view := &recordingView{}

	err := NewSyncClient(store, view).Create(context.Background(), validInput())
	require.Error(t, err)

	list, _, _ := store.calls()
	assert.Zero(t, list)
	assert.Empty(t, view.screens)
	assert.Zero(t, view.resets)
	notice := view.lastNotice()
	assert.Equal(t, NoticeError, notice.Level)
	assert.Contains(t, notice.Text, "conflict")
}

func TestCreate_RejectionWithoutMessage(t *testing.T) {
	store := &fakeStore{createErr: &domain.RemoteError{Status: 500}}
	view := &recordingView{}

	_ = NewSyncClient(store, view).Create(context.Background(), validInput())
	assert.Equal(t, "Failed to add project: Unknown error", view.lastNotice().Text)
}

func TestCreate_NetworkAndTimeoutMessages(t *testing.T) {
	store := &fakeStore{createErr: domain.ErrNetwork}
	view := &recordingView{}
	sc := NewSyncClient(store, view)

	_ = sc.Create(context.Background(), validInput())
	assert.Equal(t, createFailures.network, view.lastNotice().Text)

	store.createErr = fmt.Errorf("create project: %w", domain.ErrTimeout)
	_ = sc.Create(context.Background(), validInput())
	assert.Equal(t, createFailures.timedOut, view.lastNotice().Text)

	list, _, _ := store.calls()
	assert.Zero(t, list)
}

func TestDelete_DeclinedIssuesNoRequest(t *testing.T) {
	store := &fakeStore{projects: []domain.Project{{ID: "a"}}}
	view := &recordingView{confirms: false}

	err := NewSyncClient(store, view).Delete(context.Background(), "a")

	assert.ErrorIs(t, err, ErrDeclined)
	list, _, del := store.calls()
	assert.Zero(t, list)
	assert.Zero(t, del)
	assert.Equal(t, []string{MsgConfirmDelete}, view.prompts)
	assert.Empty(t, view.notices)
}

func TestDelete_ConfirmedReloadsOnce(t *testing.T) {
	store := &fakeStore{projects: []domain.Project{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}}
	view := &recordingView{confirms: true}

	require.NoError(t, NewSyncClient(store, view).Delete(context.Background(), "a"))

	list, _, del := store.calls()
	assert.Equal(t, 1, del)
	assert.Equal(t, 1, list)
	assert.Equal(t, Notice{Level: NoticeSuccess, Text: MsgDeleted}, view.notices[0])
	require.Len(t, view.last().Cards, 1)
	assert.Equal(t, "b", view.last().Cards[0].ID)
}

func TestDelete_FailureDoesNotReload(t *testing.T) {
	store := &fakeStore{}
	view := &recordingView{confirms: true}

	err := NewSyncClient(store, view).Delete(context.Background(), "ghost")

	var rerr *domain.RemoteError
	require.True(t, errors.As(err, &rerr))
	list, _, _ := store.calls()
	assert.Zero(t, list)
	assert.Equal(t, "Failed to delete project: project not found", view.lastNotice().Text)
}

func TestCard_DeleteIsBoundToItsID(t *testing.T) {
	store := &fakeStore{projects: []domain.Project{{ID: "first"}, {ID: "second"}}}
	view := &recordingView{confirms: true}
	sc := NewSyncClient(store, view)
	require.NoError(t, sc.Load(context.Background()))

	cards := view.last().Cards
	require.NoError(t, cards[1].Delete())

	assert.Equal(t, []string{"second"}, store.deletedIDs)
	require.Len(t, view.last().Cards, 1)
	assert.Equal(t, "first", view.last().Cards[0].ID)
}

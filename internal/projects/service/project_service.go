package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ennichirag3/blue-carbon-frontend/internal/logging"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

// ErrDeclined is returned by Delete when the user does not confirm.
var ErrDeclined = errors.New("deletion not confirmed")

// Store is the remote system of record for projects.
type Store interface {
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, in domain.NewProject) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// SyncClient keeps a View in step with the project store: every successful
// mutation is followed by a full reload.
type SyncClient struct {
	store      Store
	view       View
	log        *logging.Logger
	guardStale bool

	issued atomic.Uint64

	mu    sync.Mutex
	shown uint64
}

type Option func(*SyncClient)

func WithLogger(l *logging.Logger) Option {
	return func(s *SyncClient) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStaleGuard controls whether a Load that finishes after a newer one is dropped.
func WithStaleGuard(enabled bool) Option {
	return func(s *SyncClient) { s.guardStale = enabled }
}

// NewSyncClient creates a sync client. The stale-load guard is on by default.
func NewSyncClient(store Store, view View, opts ...Option) *SyncClient {
	s := &SyncClient{
		store:      store,
		view:       view,
		log:        logging.NewNop(),
		guardStale: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the collection and renders it, or renders the failure placeholder.
func (s *SyncClient) Load(ctx context.Context) error {
	seq := s.issued.Add(1)

	projects, err := s.store.List(ctx)
	if err != nil {
		s.log.LogError(ctx, "load_projects", err)
		placeholder := PlaceholderFailed
		if errors.Is(err, domain.ErrTimeout) {
			placeholder = PlaceholderTimedOut
		}
		s.present(ctx, seq, Screen{State: StateFailed, Placeholder: placeholder})
		return err
	}

	s.present(ctx, seq, s.buildScreen(projects))
	return nil
}

// Create validates the form, submits it and reloads on success.
func (s *SyncClient) Create(ctx context.Context, in domain.FormInput) error {
	np, err := in.Validate()
	if err != nil {
		s.view.Notify(Notice{Level: NoticeWarning, Text: MsgInvalidInput})
		return err
	}

	created, err := s.store.Create(ctx, np)
	if err != nil {
		s.reportFailure(ctx, "create_project", err, createFailures)
		return err
	}
	if created != nil {
		s.log.LogInfof(ctx, "create_project", "created project id=%s", created.ID)
	}

	s.view.Notify(Notice{Level: NoticeSuccess, Text: MsgCreated})
	s.view.ResetForm()
	_ = s.Load(ctx)
	return nil
}

// Delete asks for confirmation, removes the project and reloads on success.
func (s *SyncClient) Delete(ctx context.Context, id string) error {
	if !s.view.Confirm(ctx, MsgConfirmDelete) {
		return ErrDeclined
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.reportFailure(ctx, "delete_project", err, deleteFailures)
		return err
	}
	s.log.LogInfof(ctx, "delete_project", "deleted project id=%s", id)

	s.view.Notify(Notice{Level: NoticeSuccess, Text: MsgDeleted})
	_ = s.Load(ctx)
	return nil
}

func (s *SyncClient) buildScreen(projects []domain.Project) Screen {
	if len(projects) == 0 {
		return Screen{State: StateEmpty, Placeholder: PlaceholderEmpty}
	}

	stats := domain.Summarize(projects)
	cards := make([]Card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, s.card(p))
	}
	return Screen{
		State:        StateListed,
		ProjectCount: stats.ProjectCount,
		CarbonTotal:  stats.CarbonTotal,
		Cards:        cards,
	}
}

func (s *SyncClient) card(p domain.Project) Card {
	id := p.ID
	return Card{
		ID:          id,
		Name:        orDefault(p.Name, DefaultName),
		Description: orDefault(p.Description, DefaultDescription),
		Location:    orDefault(p.Location, DefaultLocation),
		CarbonSaved: domain.CoerceNumber(p.CarbonSaved),
		Delete: func() error {
			return s.Delete(context.Background(), id)
		},
	}
}

// present renders screen unless a newer Load has already been shown.
func (s *SyncClient) present(ctx context.Context, seq uint64, screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.guardStale && seq < s.shown {
		s.log.LogDebugf(ctx, "load_projects", "discarding stale load seq=%d shown=%d", seq, s.shown)
		return
	}
	if seq > s.shown {
		s.shown = seq
	}
	s.view.Render(screen)
}

func (s *SyncClient) reportFailure(ctx context.Context, op string, err error, msgs failureMessages) {
	var rerr *domain.RemoteError
	switch {
	case errors.As(err, &rerr):
		s.log.LogWarnf(ctx, op, "store rejected request: %v", err)
		msg := rerr.Message
		if msg == "" {
			msg = MsgUnknownError
		}
		s.view.Notify(Notice{Level: NoticeError, Text: msgs.rejected + ": " + msg})
	case errors.Is(err, domain.ErrTimeout):
		s.log.LogError(ctx, op, err)
		s.view.Notify(Notice{Level: NoticeError, Text: msgs.timedOut})
	default:
		s.log.LogError(ctx, op, err)
		s.view.Notify(Notice{Level: NoticeError, Text: msgs.network})
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

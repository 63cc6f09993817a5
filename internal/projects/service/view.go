package service

import (
	"context"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

// View is the presentation layer driven by the sync client.
type View interface {
	// Render replaces everything on screen. It is never a partial update.
	Render(Screen)
	Notify(Notice)
	// ResetForm clears the new-project form back to empty.
	ResetForm()
	// Confirm blocks until the user accepts or declines prompt.
	Confirm(ctx context.Context, prompt string) bool
}

type ScreenState int

const (
	StateListed ScreenState = iota
	StateEmpty
	StateFailed
)

// Screen is one complete render of the project list and its counters.
type Screen struct {
	State        ScreenState
	Placeholder  string
	ProjectCount int
	CarbonTotal  float64
	Cards        []Card
}

func (s Screen) CountText() string {
	return domain.FormatNumber(float64(s.ProjectCount))
}

func (s Screen) CarbonText() string {
	return domain.FormatNumber(s.CarbonTotal)
}

// Card is a single rendered project. Delete is bound to the card's id.
type Card struct {
	ID          string
	Name        string
	Description string
	Location    string
	CarbonSaved float64
	Delete      func() error
}

func (c Card) CarbonText() string {
	return domain.FormatNumber(c.CarbonSaved)
}

type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeWarning
	NoticeError
)

type Notice struct {
	Level NoticeLevel
	Text  string
}

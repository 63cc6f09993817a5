package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/service"
)

type sender interface {
	Send(msg tea.Msg)
}

type screenMsg struct{ screen service.Screen }

type noticeMsg struct{ notice service.Notice }

type resetFormMsg struct{}

type confirmMsg struct {
	prompt string
	reply  chan<- bool
}

// Bridge is the service.View handed to the sync client. It forwards every
// call into the running bubbletea program as a message.
type Bridge struct {
	mu sync.RWMutex
	p  sender
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach connects the bridge to a program. Calls made before Attach are dropped.
func (b *Bridge) Attach(p sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.p = p
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.RLock()
	p := b.p
	b.mu.RUnlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

func (b *Bridge) Render(s service.Screen) {
	b.send(screenMsg{screen: s})
}

func (b *Bridge) Notify(n service.Notice) {
	b.send(noticeMsg{notice: n})
}

func (b *Bridge) ResetForm() {
	b.send(resetFormMsg{})
}

// Confirm shows a y/n dialog and blocks the calling operation until it is answered.
func (b *Bridge) Confirm(ctx context.Context, prompt string) bool {
	reply := make(chan bool, 1)
	if !b.send(confirmMsg{prompt: prompt, reply: reply}) {
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

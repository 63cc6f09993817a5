package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

type fakeStore struct {
	mu       sync.Mutex
	projects []domain.Project
	nextID   int

	listErr   error
	createErr error
	deleteErr error

	listCalls   int
	createCalls int
	deleteCalls int
	deletedIDs  []string
}

func (f *fakeStore) List(ctx context.Context) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	p := domain.Project{
		ID:          fmt.Sprintf("bluecarbon-%05d-0000", f.nextID),
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		CarbonSaved: in.CarbonSaved,
	}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.deletedIDs = append(f.deletedIDs, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return &domain.RemoteError{Status: 404, Message: "project not found"}
}

func (f *fakeStore) calls() (list, create, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.deleteCalls
}

type recordingView struct {
	mu       sync.Mutex
	screens  []Screen
	notices  []Notice
	resets   int
	prompts  []string
	confirms bool
}

func (v *recordingView) Render(s Screen) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.screens = append(v.screens, s)
}

func (v *recordingView) Notify(n Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, n)
}

func (v *recordingView) ResetForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
}

func (v *recordingView) Confirm(ctx context.Context, prompt string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prompts = append(v.prompts, prompt)
	return v.confirms
}

func (v *recordingView) last() Screen {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.screens[len(v.screens)-1]
}

func (v *recordingView) lastNotice() Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notices[len(v.notices)-1]
}

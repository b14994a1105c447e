// Package memstore keeps every collection in process memory behind a mutex.
// It backs the "memory" driver and the HTTP tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-admin/internal/domain/about"
	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/internal/domain/user"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type Store struct {
	mu          sync.RWMutex
	about       *about.About
	users       map[string]user.User
	experiences map[uuid.UUID]experience.Experience
	feedback    map[uuid.UUID]feedback.Feedback
	projects    map[uuid.UUID]project.Project
}

func New() *Store {
	return &Store{
		users:       make(map[string]user.User),
		experiences: make(map[uuid.UUID]experience.Experience),
		feedback:    make(map[uuid.UUID]feedback.Feedback),
		projects:    make(map[uuid.UUID]project.Project),
	}
}

func (s *Store) About() about.Repository { return aboutRepo{s} }
func (s *Store) Users() user.Repository { return userRepo{s} }
func (s *Store) Experiences() experience.Repository { return experienceRepo{s} }
func (s *Store) Feedback() feedback.Repository { return feedbackRepo{s} }
func (s *Store) Projects() project.Repository { return projectRepo{s} }

// AboutCount reports how many About documents exist (0 or 1).
func (s *Store) AboutCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.about == nil {
		return 0
	}
	return 1
}

type aboutRepo struct{ s *Store }

func copyAbout(a *about.About) *about.About {
	c := *a
	c.Skills = append([]string{}, a.Skills...)
	c.Education = append([]about.Education{}, a.Education...)
	return &c
}

func (r aboutRepo) GetOrCreate(_ context.Context, defaults *about.About) (*about.About, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.about == nil {
		a := copyAbout(defaults)
		a.ID = about.SingletonID
		r.s.about = a
	}
	return copyAbout(r.s.about), nil
}

func (r aboutRepo) Replace(_ context.Context, a *about.About) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := copyAbout(a)
	c.ID = about.SingletonID
	r.s.about = c
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[user.NormalizeEmail(email)]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return &u, nil
}

func (r userRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := user.NormalizeEmail(u.Email)
	if _, ok := r.s.users[key]; ok {
		return apperror.NewConflict("user", "email", u.Email)
	}
	r.s.users[key] = *u
	return nil
}

func (r userRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, u := range r.s.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			r.s.users[k] = u
			return nil
		}
	}
	return apperror.NewNotFound("user", id.String())
}

type experienceRepo struct{ s *Store }

func (r experienceRepo) Save(_ context.Context, e *experience.Experience) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.experiences[e.ID]; ok {
		return apperror.NewConflict("experience", "id", e.ID.String())
	}
	r.s.experiences[e.ID] = *e
	return nil
}

func (r experienceRepo) Update(_ context.Context, e *experience.Experience) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.experiences[e.ID]; !ok {
		return apperror.NewNotFound("experience", e.ID.String())
	}
	r.s.experiences[e.ID] = *e
	return nil
}

func (r experienceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.experiences[id]; !ok {
		return apperror.NewNotFound("experience", id.String())
	}
	delete(r.s.experiences, id)
	return nil
}

func (r experienceRepo) FindByID(_ context.Context, id uuid.UUID) (*experience.Experience, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.experiences[id]
	if !ok {
		return nil, apperror.NewNotFound("experience", id.String())
	}
	return &e, nil
}

func (r experienceRepo) List(context.Context) ([]*experience.Experience, error) {
	r.s.mu.RLock()
	items := make([]*experience.Experience, 0, len(r.s.experiences))
	for _, e := range r.s.experiences {
		e := e
		items = append(items, &e)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].StartDate.Equal(items[j].StartDate) {
			return items[i].StartDate.After(items[j].StartDate)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

type feedbackRepo struct{ s *Store }

func (r feedbackRepo) Save(_ context.Context, f *feedback.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedback[f.ID]; ok {
		return apperror.NewConflict("feedback", "id", f.ID.String())
	}
	r.s.feedback[f.ID] = *f
	return nil
}

func (r feedbackRepo) Update(_ context.Context, f *feedback.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedback[f.ID]; !ok {
		return apperror.NewNotFound("feedback", f.ID.String())
	}
	r.s.feedback[f.ID] = *f
	return nil
}

func (r feedbackRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedback[id]; !ok {
		return apperror.NewNotFound("feedback", id.String())
	}
	delete(r.s.feedback, id)
	return nil
}

func (r feedbackRepo) FindByID(_ context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.feedback[id]
	if !ok {
		return nil, apperror.NewNotFound("feedback", id.String())
	}
	return &f, nil
}

func (r feedbackRepo) List(context.Context) ([]*feedback.Feedback, error) {
	r.s.mu.RLock()
	items := make([]*feedback.Feedback, 0, len(r.s.feedback))
	for _, f := range r.s.feedback {
		f := f
		items = append(items, &f)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

type projectRepo struct{ s *Store }

func (r projectRepo) Save(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; ok {
		return apperror.NewConflict("project", "id", p.ID.String())
	}
	r.s.projects[p.ID] = *p
	return nil
}

func (r projectRepo) Update(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; !ok {
		return apperror.NewNotFound("project", p.ID.String())
	}
	r.s.projects[p.ID] = *p
	return nil
}

func (r projectRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return apperror.NewNotFound("project", id.String())
	}
	delete(r.s.projects, id)
	return nil
}

func (r projectRepo) FindByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, apperror.NewNotFound("project", id.String())
	}
	return &p, nil
}

func (r projectRepo) List(context.Context) ([]*project.Project, error) {
	r.s.mu.RLock()
	items := make([]*project.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		p := p
		items = append(items, &p)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

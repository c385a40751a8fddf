// Package studio holds the game element editor: projects, their elements and element templates.
//
// Store is a value. Every operation returns a new Store and leaves the receiver untouched,
// so a caller can keep the previous snapshot (for undo, or simply to compare).
package studio

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tatianab/game-studio/internal/models"
)

var (
	ErrEmptyName        = errors.New("project name is required")
	ErrProjectNotFound  = errors.New("project not found")
	ErrNoCurrentProject = errors.New("no project is open")
	ErrUnknownTemplate  = errors.New("unknown element type")
)

// Store is an immutable snapshot of every project and which one is open.
type Store struct {
	projects []models.GameProject
	current  string

	now   func() time.Time
	newID func(prefix string) string
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used for LastModified.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the id generator.
func WithIDs(newID func(prefix string) string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore returns an empty store.
func NewStore(opts ...Option) Store {
	s := Store{
		now:   time.Now,
		newID: func(prefix string) string { return prefix + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Projects returns every project in creation order.
func (s Store) Projects() []models.GameProject {
	out := make([]models.GameProject, len(s.projects))
	for i, p := range s.projects {
		out[i] = cloneProject(p)
	}
	return out
}

// Project looks a project up by id.
func (s Store) Project(id string) (models.GameProject, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.GameProject{}, false
	}
	return cloneProject(s.projects[i]), true
}

// Current returns the open project.
func (s Store) Current() (models.GameProject, bool) {
	if s.current == "" {
		return models.GameProject{}, false
	}
	return s.Project(s.current)
}

// CreateProject appends an empty project and opens it.
func (s Store) CreateProject(name, description string) (Store, models.GameProject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, models.GameProject{}, ErrEmptyName
	}
	p := models.GameProject{
		ID:           s.newID("p_"),
		Name:         name,
		Description:  strings.TrimSpace(description),
		Elements:     []models.GameElement{},
		LastModified: s.now(),
	}

	next := s.clone()
	next.projects = append(next.projects, p)
	next.current = p.ID
	return next, cloneProject(p), nil
}

// Open makes the project with the given id current.
func (s Store) Open(projectID string) (Store, error) {
	if s.indexOf(projectID) < 0 {
		return s, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}
	next := s.clone()
	next.current = projectID
	return next, nil
}

// Close returns to the project list.
func (s Store) Close() Store {
	next := s.clone()
	next.current = ""
	return next
}

// AddElement appends a new element built from tmpl to the project.
func (s Store) AddElement(projectID string, tmpl models.ElementTemplate) (Store, models.GameElement, error) {
	if !tmpl.Type.Valid() {
		return s, models.GameElement{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, tmpl.Type)
	}
	i := s.indexOf(projectID)
	if i < 0 {
		return s, models.GameElement{}, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	el := FromTemplate(tmpl, s.newID("e_"))
	next := s.clone()
	p := &next.projects[i]
	p.Elements = append(p.Elements, el)
	next.touch(p)
	return next, cloneElement(el), nil
}

// UpdateElement replaces the element with the same id in the open project.
// An id that is not in the project leaves the store unchanged.
func (s Store) UpdateElement(el models.GameElement) (Store, error) {
	return s.editElement(el.ID, func(e *models.GameElement) {
		*e = cloneElement(el)
	})
}

// MoveElement sets an element's map position in the open project.
func (s Store) MoveElement(id string, pos models.Position) (Store, error) {
	return s.editElement(id, func(e *models.GameElement) {
		e.Position = &models.Position{X: pos.X, Y: pos.Y}
	})
}

// DeleteElement removes the element from the open project. Deleting an absent id is a no-op.
func (s Store) DeleteElement(id string) (Store, error) {
	i, err := s.currentIndex()
	if err != nil {
		return s, err
	}
	if _, ok := s.projects[i].Element(id); !ok {
		return s, nil
	}

	next := s.clone()
	p := &next.projects[i]
	kept := p.Elements[:0]
	for _, e := range p.Elements {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	p.Elements = kept
	next.touch(p)
	return next, nil
}

// SetGameLogic replaces the free-text logic of the open project.
func (s Store) SetGameLogic(text string) (Store, error) {
	return s.editProject(func(p *models.GameProject) { p.GameLogic = text })
}

// Rename changes the open project's name. It does not count as a modification.
func (s Store) Rename(name string) (Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrEmptyName
	}
	return s.editProject(func(p *models.GameProject) { p.Name = name })
}

// Describe changes the open project's description. It does not count as a modification.
func (s Store) Describe(description string) (Store, error) {
	return s.editProject(func(p *models.GameProject) { p.Description = strings.TrimSpace(description) })
}

func (s Store) editProject(fn func(p *models.GameProject)) (Store, error) {
	i, err := s.currentIndex()
	if err != nil {
		return s, err
	}
	next := s.clone()
	fn(&next.projects[i])
	return next, nil
}

func (s Store) editElement(id string, fn func(e *models.GameElement)) (Store, error) {
	i, err := s.currentIndex()
	if err != nil {
		return s, err
	}
	next := s.clone()
	p := &next.projects[i]
	for j := range p.Elements {
		if p.Elements[j].ID == id {
			fn(&p.Elements[j])
			next.touch(p)
			return next, nil
		}
	}
	return s, nil
}

// touch advances LastModified, strictly, even when the clock has not moved.
func (s Store) touch(p *models.GameProject) {
	t := s.now()
	if !t.After(p.LastModified) {
		t = p.LastModified.Add(time.Nanosecond)
	}
	p.LastModified = t
}

func (s Store) currentIndex() (int, error) {
	if s.current == "" {
		return -1, ErrNoCurrentProject
	}
	i := s.indexOf(s.current)
	if i < 0 {
		return -1, ErrNoCurrentProject
	}
	return i, nil
}

func (s Store) indexOf(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// clone deep-copies the project list so edits on the copy never reach s.
func (s Store) clone() Store {
	next := s
	next.projects = make([]models.GameProject, len(s.projects))
	for i, p := range s.projects {
		next.projects[i] = cloneProject(p)
	}
	return next
}

package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"crowdfunding-service/internal/models"
)

// MemoryProjectRepository is an in-memory ProjectRepository used by tests
// and local experiments. It mirrors the store-assigned behavior of the
// database-backed implementation: IDs and timestamps are filled on first
// save.
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	projects []models.Project
}

// NewMemoryProjectRepository creates an empty in-memory repository.
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{}
}

func (m *MemoryProjectRepository) Save(project *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	for i := range m.projects {
		if m.projects[i].ID == project.ID {
			m.projects[i] = *project
			return nil
		}
	}
	m.projects = append(m.projects, *project)
	return nil
}

func (m *MemoryProjectRepository) FindByID(id uuid.UUID) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.projects {
		if m.projects[i].ID == id {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryProjectRepository) FindByIDForUpdate(id uuid.UUID) (*models.Project, error) {
	return m.FindByID(id)
}

func (m *MemoryProjectRepository) FindByTitle(title string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.projects {
		if m.projects[i].Title == title {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryProjectRepository) ExistsByID(id uuid.UUID) (bool, error) {
	_, err := m.FindByID(id)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *MemoryProjectRepository) DeleteByID(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.projects {
		if m.projects[i].ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryProjectRepository) FindAll(p models.Pagination) (*models.ProjectPage, error) {
	return m.filter(func(models.Project) bool { return true }, p)
}

func (m *MemoryProjectRepository) FindByCategory(category string, p models.Pagination) (*models.ProjectPage, error) {
	return m.filter(func(project models.Project) bool {
		return strings.EqualFold(project.Category, category)
	}, p)
}

func (m *MemoryProjectRepository) FindByCreatorID(creatorID string, p models.Pagination) (*models.ProjectPage, error) {
	return m.filter(func(project models.Project) bool {
		return project.CreatorID == creatorID
	}, p)
}

func (m *MemoryProjectRepository) FindByStatus(status models.ProjectStatus, p models.Pagination) (*models.ProjectPage, error) {
	return m.filter(func(project models.Project) bool {
		return project.Status == status
	}, p)
}

func (m *MemoryProjectRepository) FindByTags(tags []string, p models.Pagination) (*models.ProjectPage, error) {
	wanted := map[string]bool{}
	for _, t := range tags {
		wanted[t] = true
	}
	return m.filter(func(project models.Project) bool {
		for _, t := range project.Tags {
			if wanted[t] {
				return true
			}
		}
		return false
	}, p)
}

// Transaction serializes callers; the in-memory store has no rollback.
func (m *MemoryProjectRepository) Transaction(fn func(ProjectRepository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

func (m *MemoryProjectRepository) filter(match func(models.Project) bool, p models.Pagination) (*models.ProjectPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = p.Normalized()

	matches := make([]models.Project, 0, len(m.projects))
	for _, project := range m.projects {
		if match(project) {
			matches = append(matches, project)
		}
	}
	if p.Sort == "title" {
		sort.Slice(matches, func(i, j int) bool { return matches[i].Title < matches[j].Title })
	} else {
		sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	}

	total := int64(len(matches))
	start := p.Offset()
	if start > len(matches) {
		start = len(matches)
	}
	end := start + p.Size
	if end > len(matches) {
		end = len(matches)
	}
	return models.NewProjectPage(matches[start:end], total, p), nil
}

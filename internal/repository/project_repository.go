package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crowdfunding-service/internal/models"
)

// ErrNotFound is returned when no project matches the query.
var ErrNotFound = errors.New("project not found")

// ProjectRepository is the persistence contract consumed by the services.
// FindByIDForUpdate must be called inside Transaction.
type ProjectRepository interface {
	Save(project *models.Project) error
	FindByID(id uuid.UUID) (*models.Project, error)
	FindByIDForUpdate(id uuid.UUID) (*models.Project, error)
	FindByTitle(title string) (*models.Project, error)
	ExistsByID(id uuid.UUID) (bool, error)
	DeleteByID(id uuid.UUID) error
	FindAll(p models.Pagination) (*models.ProjectPage, error)
	FindByCategory(category string, p models.Pagination) (*models.ProjectPage, error)
	FindByCreatorID(creatorID string, p models.Pagination) (*models.ProjectPage, error)
	FindByStatus(status models.ProjectStatus, p models.Pagination) (*models.ProjectPage, error)
	FindByTags(tags []string, p models.Pagination) (*models.ProjectPage, error)
	Transaction(fn func(ProjectRepository) error) error
}

// ProjectRepositoryImpl provides GORM-backed persistence for projects.
type ProjectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a ProjectRepositoryImpl with the provided
// GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{db: db}
}

// Save inserts the project when it has no ID yet, otherwise overwrites the
// stored record. GORM refreshes the timestamps.
func (r *ProjectRepositoryImpl) Save(project *models.Project) error {
	return r.db.Save(project).Error
}

// FindByID retrieves a project by its ID.
func (r *ProjectRepositoryImpl) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

// FindByIDForUpdate loads the project under a row lock so concurrent
// read-modify-write cycles on the same record serialize.
func (r *ProjectRepositoryImpl) FindByIDForUpdate(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

// FindByTitle retrieves a project by exact title match.
func (r *ProjectRepositoryImpl) FindByTitle(title string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "title = ?", title).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

// ExistsByID reports whether a project with the given ID is stored.
func (r *ProjectRepositoryImpl) ExistsByID(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// DeleteByID removes the project permanently.
func (r *ProjectRepositoryImpl) DeleteByID(id uuid.UUID) error {
	res := r.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll retrieves a page over all projects.
func (r *ProjectRepositoryImpl) FindAll(p models.Pagination) (*models.ProjectPage, error) {
	return r.page(r.db.Model(&models.Project{}), p)
}

// FindByCategory retrieves a page of projects matching the category,
// case-insensitively.
func (r *ProjectRepositoryImpl) FindByCategory(category string, p models.Pagination) (*models.ProjectPage, error) {
	q := r.db.Model(&models.Project{}).Where("LOWER(category) = LOWER(?)", category)
	return r.page(q, p)
}

// FindByCreatorID retrieves a page of projects belonging to the creator.
func (r *ProjectRepositoryImpl) FindByCreatorID(creatorID string, p models.Pagination) (*models.ProjectPage, error) {
	q := r.db.Model(&models.Project{}).Where("creator_id = ?", creatorID)
	return r.page(q, p)
}

// FindByStatus retrieves a page of projects in the given status.
func (r *ProjectRepositoryImpl) FindByStatus(status models.ProjectStatus, p models.Pagination) (*models.ProjectPage, error) {
	q := r.db.Model(&models.Project{}).Where("status = ?", status)
	return r.page(q, p)
}

// FindByTags retrieves a page of projects whose tags overlap the given set.
func (r *ProjectRepositoryImpl) FindByTags(tags []string, p models.Pagination) (*models.ProjectPage, error) {
	q := r.db.Model(&models.Project{}).Where("tags && ?", pq.Array(tags))
	return r.page(q, p)
}

// Transaction runs fn against a transaction-scoped repository and commits
// when fn returns nil.
func (r *ProjectRepositoryImpl) Transaction(fn func(ProjectRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ProjectRepositoryImpl{db: tx})
	})
}

// sortColumns whitelists the sortable fields, keyed by the names callers
// send (snake_case column or JSON field name).
var sortColumns = map[string]string{
	"created_at":  "created_at",
	"createdAt":   "created_at",
	"updated_at":  "updated_at",
	"updatedAt":   "updated_at",
	"title":       "title",
	"deadline":    "deadline",
	"fundingGoal": "funding_goal",
}

func (r *ProjectRepositoryImpl) page(q *gorm.DB, p models.Pagination) (*models.ProjectPage, error) {
	p = p.Normalized()

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	column, ok := sortColumns[p.Sort]
	if !ok {
		column = models.DefaultSort
	}

	var projects []models.Project
	err := q.Order(column + " ASC").Offset(p.Offset()).Limit(p.Size).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return models.NewProjectPage(projects, total, p), nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

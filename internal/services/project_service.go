package services

import (
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"crowdfunding-service/internal/metrics"
	"crowdfunding-service/internal/models"
	"crowdfunding-service/internal/repository"
)

// ProjectService implements the crowdfunding project lifecycle rules on
// top of the repository. It holds no state of its own.
type ProjectService struct {
	repo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create stores a new project in draft status with nothing raised yet.
// Titles must be unique across all stored projects.
func (s *ProjectService) Create(req *models.ProjectRequest) (*models.Project, error) {
	log.Printf("Creating project: %s", req.Title)

	existing, err := s.repo.FindByTitle(req.Title)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "looking up title")
	}
	if existing != nil {
		return nil, ErrDuplicateTitle
	}

	project := req.ToProject()
	if err := s.repo.Save(project); err != nil {
		return nil, errors.Wrap(err, "saving project")
	}

	metrics.ProjectsCreated.Inc()
	log.Printf("Project created: %s", project.ID)
	return project, nil
}

// GetByID retrieves a single project.
func (s *ProjectService) GetByID(id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, errors.Wrap(err, "loading project")
	}
	return project, nil
}

// ListAll returns a page over all projects.
func (s *ProjectService) ListAll(p models.Pagination) (*models.ProjectPage, error) {
	return s.repo.FindAll(p)
}

// Update overwrites the editable fields of an existing project. Status
// and the raised amount are untouched; those only move through Publish
// and AddDonation.
func (s *ProjectService) Update(id uuid.UUID, req *models.ProjectRequest) (*models.Project, error) {
	log.Printf("Updating project: %s", id)

	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	other, err := s.repo.FindByTitle(req.Title)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "looking up title")
	}
	if other != nil && other.ID != id {
		return nil, ErrDuplicateTitle
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Category = req.Category
	project.FundingGoal = req.FundingGoal
	project.Deadline = req.Deadline
	project.Tags = pq.StringArray(req.Tags)
	project.ImageURL = req.ImageURL

	if err := s.repo.Save(project); err != nil {
		return nil, errors.Wrap(err, "saving project")
	}
	log.Printf("Project updated: %s", id)
	return project, nil
}

// Delete permanently removes a project.
func (s *ProjectService) Delete(id uuid.UUID) error {
	log.Printf("Deleting project: %s", id)

	exists, err := s.repo.ExistsByID(id)
	if err != nil {
		return errors.Wrap(err, "checking project")
	}
	if !exists {
		return ErrProjectNotFound
	}
	if err := s.repo.DeleteByID(id); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	return nil
}

// Publish moves a draft project to published. Any other starting status
// is rejected.
func (s *ProjectService) Publish(id uuid.UUID) (*models.Project, error) {
	log.Printf("Publishing project: %s", id)

	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.Status != models.StatusDraft {
		return nil, errors.Wrap(ErrInvalidTransition, "only draft projects can be published")
	}

	project.Status = models.StatusPublished
	if err := s.repo.Save(project); err != nil {
		return nil, errors.Wrap(err, "saving project")
	}

	metrics.ProjectsPublished.Inc()
	log.Printf("Project published: %s", id)
	return project, nil
}

// AddDonation accrues a donation onto a project and recomputes its
// status. The checks run in a fixed order: amount, existence, status,
// deadline. The read-modify-write runs inside a transaction under a row
// lock so concurrent donations to the same project never lose updates.
func (s *ProjectService) AddDonation(id uuid.UUID, amount decimal.Decimal) (*models.Project, error) {
	log.Printf("Adding donation to project: %s", id)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var donated *models.Project
	err := s.repo.Transaction(func(r repository.ProjectRepository) error {
		project, err := r.FindByIDForUpdate(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrProjectNotFound
			}
			return errors.Wrap(err, "loading project")
		}

		if !project.Status.IsOpenForDonations() {
			return errors.Wrap(ErrInvalidTransition, "project is not open for donations")
		}
		if models.Today().After(project.Deadline) {
			return ErrDeadlinePassed
		}

		newTotal := project.AmountRaised.Add(amount)
		project.AmountRaised = newTotal
		if newTotal.GreaterThanOrEqual(project.FundingGoal) {
			project.Status = models.StatusConcluded
		} else if project.Status == models.StatusPublished {
			project.Status = models.StatusInProgress
		}

		if err := r.Save(project); err != nil {
			return errors.Wrap(err, "saving donation")
		}
		donated = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.Donations.Inc()
	metrics.DonationAmount.Add(amount.InexactFloat64())
	log.Printf("Donation added to project: %s", id)
	return donated, nil
}

// ListByCategory returns a page of projects matching the category,
// case-insensitively.
func (s *ProjectService) ListByCategory(category string, p models.Pagination) (*models.ProjectPage, error) {
	return s.repo.FindByCategory(category, p)
}

// ListByCreator returns a page of projects belonging to the creator.
func (s *ProjectService) ListByCreator(creatorID string, p models.Pagination) (*models.ProjectPage, error) {
	return s.repo.FindByCreatorID(creatorID, p)
}

// ListActive returns a page of published projects.
func (s *ProjectService) ListActive(p models.Pagination) (*models.ProjectPage, error) {
	return s.repo.FindByStatus(models.StatusPublished, p)
}

// ListByTags returns a page of projects whose tags intersect the given set.
func (s *ProjectService) ListByTags(tags []string, p models.Pagination) (*models.ProjectPage, error) {
	return s.repo.FindByTags(tags, p)
}

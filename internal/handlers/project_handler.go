package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crowdfunding-service/internal/models"
	"crowdfunding-service/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	imageService   *services.ImageService
}

func NewProjectHandler(projectService *services.ProjectService, imageService *services.ImageService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		imageService:   imageService,
	}
}

func pagination(c *fiber.Ctx) models.Pagination {
	return models.Pagination{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", models.DefaultPageSize),
		Sort: c.Query("sort", models.DefaultSort),
	}
}

// CreateProject creates a new crowdfunding project
// @Summary Create a new project
// @Description Create a new crowdfunding project in draft status
// @Tags projetos
// @Accept json
// @Produce json
// @Param project body models.ProjectRequest true "Project data"
// @Success 201 {object} models.Project "Project successfully created"
// @Failure 400 {object} handlers.errorResponse "Validation failure or duplicate title"
// @Router /projetos [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req models.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing project data: %v", err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid request body")
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return writeValidationError(c, fieldErrors)
	}

	project, err := h.projectService.Create(&req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject returns a project by ID
// @Summary Get a project by ID
// @Tags projetos
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} models.Project "Project found"
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /projetos/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid project UUID format: %s - Error: %v", idStr, err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid project id")
	}
	project, err := h.projectService.GetByID(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(project)
}

// ListProjects lists all projects with pagination
// @Summary List all projects
// @Tags projetos
// @Produce json
// @Param page query int false "Page number (zero-based)"
// @Param size query int false "Page size" default(10)
// @Param sort query string false "Sort field" default(created_at)
// @Success 200 {object} models.ProjectPage "Page of projects"
// @Router /projetos [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	page, err := h.projectService.ListAll(pagination(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(page)
}

// UpdateProject overwrites the editable fields of a project
// @Summary Update a project
// @Description Update title, description, category, funding goal, deadline, tags and image URL
// @Tags projetos
// @Accept json
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Param project body models.ProjectRequest true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} handlers.errorResponse "Validation failure or duplicate title"
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /projetos/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid project UUID format: %s - Error: %v", idStr, err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid project id")
	}

	var req models.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing project data: %v", err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid request body")
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return writeValidationError(c, fieldErrors)
	}

	project, err := h.projectService.Update(id, &req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(project)
}

// DeleteProject permanently removes a project
// @Summary Delete a project
// @Tags projetos
// @Param id path string true "Project ID" Format(uuid)
// @Success 204 "Project deleted"
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /projetos/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid project UUID format: %s - Error: %v", idStr, err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid project id")
	}
	if err := h.projectService.Delete(id); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PublishProject moves a draft project to published
// @Summary Publish a project
// @Tags projetos
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} models.Project "Published project"
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Failure 409 {object} handlers.errorResponse "Project is not a draft"
// @Router /projetos/{id}/publicar [post]
func (h *ProjectHandler) PublishProject(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid project UUID format: %s - Error: %v", idStr, err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid project id")
	}
	project, err := h.projectService.Publish(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(project)
}

// AddDonation accrues a donation onto a project
// @Summary Add a donation to a project
// @Tags projetos
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Param valor query string true "Donation amount (decimal)"
// @Success 200 {object} models.Project "Project after the donation"
// @Failure 400 {object} handlers.errorResponse "Non-positive amount"
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Failure 409 {object} handlers.errorResponse "Not open for donations or deadline passed"
// @Router /projetos/{id}/doacao [post]
func (h *ProjectHandler) AddDonation(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid project UUID format: %s - Error: %v", idStr, err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid project id")
	}

	amount, err := decimal.NewFromString(c.Query("valor"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid donation amount")
	}

	project, err := h.projectService.AddDonation(id, amount)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(project)
}

// ListProjectsByCategory lists projects matching a category
// @Summary List projects by category
// @Tags projetos
// @Produce json
// @Param categoria path string true "Category name (case-insensitive)"
// @Param page query int false "Page number (zero-based)"
// @Param size query int false "Page size" default(10)
// @Success 200 {object} models.ProjectPage "Page of projects"
// @Router /projetos/categoria/{categoria} [get]
func (h *ProjectHandler) ListProjectsByCategory(c *fiber.Ctx) error {
	page, err := h.projectService.ListByCategory(c.Params("categoria"), pagination(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(page)
}

// ListProjectsByCreator lists projects belonging to a creator
// @Summary List projects by creator
// @Tags projetos
// @Produce json
// @Param criadorId path string true "Creator ID"
// @Param page query int false "Page number (zero-based)"
// @Param size query int false "Page size" default(10)
// @Success 200 {object} models.ProjectPage "Page of projects"
// @Router /projetos/criador/{criadorId} [get]
func (h *ProjectHandler) ListProjectsByCreator(c *fiber.Ctx) error {
	page, err := h.projectService.ListByCreator(c.Params("criadorId"), pagination(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(page)
}

// ListActiveProjects lists published projects
// @Summary List active projects
// @Tags projetos
// @Produce json
// @Param page query int false "Page number (zero-based)"
// @Param size query int false "Page size" default(10)
// @Success 200 {object} models.ProjectPage "Page of published projects"
// @Router /projetos/ativos [get]
func (h *ProjectHandler) ListActiveProjects(c *fiber.Ctx) error {
	page, err := h.projectService.ListActive(pagination(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(page)
}

// ListProjectsByTags lists projects whose tags intersect the requested set
// @Summary List projects by tags
// @Tags projetos
// @Produce json
// @Param tags query string true "Comma-separated tags"
// @Param page query int false "Page number (zero-based)"
// @Param size query int false "Page size" default(10)
// @Success 200 {object} models.ProjectPage "Page of projects"
// @Failure 400 {object} handlers.errorResponse "Missing tags parameter"
// @Router /projetos/tags [get]
func (h *ProjectHandler) ListProjectsByTags(c *fiber.Ctx) error {
	raw := c.Query("tags")
	if strings.TrimSpace(raw) == "" {
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "tags parameter is required")
	}
	tags := make([]string, 0, 4)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	page, err := h.projectService.ListByTags(tags, pagination(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(page)
}

// UploadProjectImage stores a project image and records its URL
// @Summary Upload a project image
// @Tags projetos
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Param imagem formData file true "Image file (jpg, jpeg, png, gif, webp)"
// @Success 200 {object} models.Project "Project with the new image URL"
// @Failure 400 {object} handlers.errorResponse "Unsupported image format"
// @Failure 404 {object} handlers.errorResponse "Project not found"
// @Router /projetos/{id}/imagem [post]
func (h *ProjectHandler) UploadProjectImage(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Invalid project UUID format: %s - Error: %v", idStr, err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "invalid project id")
	}

	fileHeader, err := c.FormFile("imagem")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid request", "image file is required")
	}

	project, err := h.imageService.AttachImage(id, fileHeader)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(project)
}

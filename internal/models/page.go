package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "created_at"
)

// Pagination carries the page request parameters. Page is zero-based.
type Pagination struct {
	Page int
	Size int
	Sort string
}

// Normalized clamps the parameters to sane bounds and fills defaults.
func (p Pagination) Normalized() Pagination {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	return p
}

// Offset returns the row offset for the requested page.
func (p Pagination) Offset() int {
	return p.Page * p.Size
}

// ProjectPage is the paginated listing envelope.
type ProjectPage struct {
	Content       []Project `json:"content"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
}

// NewProjectPage assembles a page envelope from a result slice and the
// total match count.
func NewProjectPage(content []Project, total int64, p Pagination) *ProjectPage {
	p = p.Normalized()
	if content == nil {
		content = []Project{}
	}
	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return &ProjectPage{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          p.Page,
		Size:          p.Size,
	}
}

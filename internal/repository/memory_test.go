package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfunding-service/internal/models"
)

func storedProject(title, category string) *models.Project {
	return &models.Project{
		Title:        title,
		Description:  "A project that needs your support",
		Category:     category,
		FundingGoal:  decimal.NewFromInt(1000),
		AmountRaised: decimal.Zero,
		Deadline:     models.DaysFromNow(30),
		CreatorID:    "creator-1",
		Status:       models.StatusDraft,
	}
}

func TestMemoryRepositorySave_AssignsIDAndTimestamps(t *testing.T) {
	repo := NewMemoryProjectRepository()

	p := storedProject("Solar Lamp", "Tecnologia")
	require.NoError(t, repo.Save(p))

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestMemoryRepositorySave_OverwritesByID(t *testing.T) {
	repo := NewMemoryProjectRepository()

	p := storedProject("Solar Lamp", "Tecnologia")
	require.NoError(t, repo.Save(p))

	p.Title = "Solar Lamp v2"
	require.NoError(t, repo.Save(p))

	found, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solar Lamp v2", found.Title)

	page, err := repo.FindAll(models.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestMemoryRepositoryFindByTitle(t *testing.T) {
	repo := NewMemoryProjectRepository()
	require.NoError(t, repo.Save(storedProject("Solar Lamp", "Tecnologia")))

	found, err := repo.FindByTitle("Solar Lamp")
	require.NoError(t, err)
	assert.Equal(t, "Solar Lamp", found.Title)

	_, err = repo.FindByTitle("solar lamp")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := NewMemoryProjectRepository()

	p := storedProject("Solar Lamp", "Tecnologia")
	require.NoError(t, repo.Save(p))

	exists, err := repo.ExistsByID(p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByID(p.ID))
	assert.ErrorIs(t, repo.DeleteByID(p.ID), ErrNotFound)

	exists, err = repo.ExistsByID(p.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryRepositoryPagination(t *testing.T) {
	repo := NewMemoryProjectRepository()
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		require.NoError(t, repo.Save(storedProject("Project "+title, "Tecnologia")))
	}

	page, err := repo.FindAll(models.Pagination{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	beyond, err := repo.FindAll(models.Pagination{Page: 9, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Content)
	assert.Equal(t, int64(5), beyond.TotalElements)
}

func TestMemoryRepositoryTagOverlap(t *testing.T) {
	repo := NewMemoryProjectRepository()

	tagged := storedProject("Solar Lamp", "Tecnologia")
	tagged.Tags = []string{"hardware", "opensource"}
	require.NoError(t, repo.Save(tagged))
	require.NoError(t, repo.Save(storedProject("Street Mural", "Arte")))

	page, err := repo.FindByTags([]string{"opensource", "other"}, models.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Solar Lamp", page.Content[0].Title)
}

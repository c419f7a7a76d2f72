package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() *ProjectRequest {
	return &ProjectRequest{
		Title:       "Solar Lamp",
		Description: "A project that needs your support",
		Category:    "Tecnologia",
		FundingGoal: decimal.NewFromInt(1000),
		Deadline:    DaysFromNow(30),
		CreatorID:   "creator-1",
	}
}

func TestProjectRequestValidate_OK(t *testing.T) {
	assert.Empty(t, baseRequest().Validate())
}

func TestProjectRequestValidate_FieldBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ProjectRequest)
		field  string
	}{
		{"short title", func(r *ProjectRequest) { r.Title = "ab" }, "title"},
		{"long title", func(r *ProjectRequest) { r.Title = strings.Repeat("x", 101) }, "title"},
		{"missing title", func(r *ProjectRequest) { r.Title = "" }, "title"},
		{"short description", func(r *ProjectRequest) { r.Description = "too short" }, "description"},
		{"missing category", func(r *ProjectRequest) { r.Category = "" }, "category"},
		{"missing creator", func(r *ProjectRequest) { r.CreatorID = "" }, "creatorId"},
		{"low funding goal", func(r *ProjectRequest) { r.FundingGoal = decimal.NewFromFloat(99.99) }, "fundingGoal"},
		{"missing deadline", func(r *ProjectRequest) { r.Deadline = Date{} }, "deadline"},
		{"past deadline", func(r *ProjectRequest) { r.Deadline = NewDate(Today().AddDate(0, 0, -1)) }, "deadline"},
		{"today deadline", func(r *ProjectRequest) { r.Deadline = Today() }, "deadline"},
		{"empty tag", func(r *ProjectRequest) { r.Tags = []string{"ok", ""} }, "tags[1]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(req)
			fieldErrors := req.Validate()
			assert.Contains(t, fieldErrors, tc.field)
		})
	}
}

func TestProjectRequestValidate_GoalBoundary(t *testing.T) {
	req := baseRequest()
	req.FundingGoal = decimal.NewFromFloat(100.00)
	assert.Empty(t, req.Validate())
}

func TestToProject(t *testing.T) {
	req := baseRequest()
	req.Tags = []string{"hardware"}
	req.ImageURL = "https://example.com/lamp.png"

	project := req.ToProject()
	require.NotNil(t, project)
	assert.Equal(t, StatusDraft, project.Status)
	assert.True(t, project.AmountRaised.IsZero())
	assert.Equal(t, req.Title, project.Title)
	assert.Equal(t, req.CreatorID, project.CreatorID)
	assert.Equal(t, []string{"hardware"}, []string(project.Tags))
	assert.Equal(t, req.ImageURL, project.ImageURL)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of a crowdfunding project.
type ProjectStatus string

const (
	StatusDraft                  ProjectStatus = "DRAFT"
	StatusPublished              ProjectStatus = "PUBLISHED"
	StatusInProgress             ProjectStatus = "IN_PROGRESS"
	StatusConcluded              ProjectStatus = "CONCLUDED"
	StatusCancelled              ProjectStatus = "CANCELLED"
	StatusSuccessfullyFinished   ProjectStatus = "SUCCESSFULLY_FINISHED"
	StatusUnsuccessfullyFinished ProjectStatus = "UNSUCCESSFULLY_FINISHED"
)

// IsOpenForDonations reports whether a project in this status accepts
// donations.
func (s ProjectStatus) IsOpenForDonations() bool {
	return s == StatusPublished || s == StatusInProgress
}

// Valid reports whether s is one of the declared statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusInProgress, StatusConcluded,
		StatusCancelled, StatusSuccessfullyFinished, StatusUnsuccessfullyFinished:
		return true
	}
	return false
}

// Project is a crowdfunding campaign. Status and AmountRaised only change
// through the service's lifecycle operations, never through a plain update.
type Project struct {
	ID           uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title        string          `json:"title" gorm:"uniqueIndex;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Category     string          `json:"category"`
	FundingGoal  decimal.Decimal `json:"fundingGoal" gorm:"type:numeric(12,2);not null"`
	AmountRaised decimal.Decimal `json:"amountRaised" gorm:"type:numeric(12,2);not null"`
	Deadline     Date            `json:"deadline" gorm:"type:date;not null"`
	CreatorID    string          `json:"creatorId" gorm:"index;not null"`
	Tags         pq.StringArray  `json:"tags,omitempty" gorm:"type:text[]"`
	Status       ProjectStatus   `json:"status" gorm:"not null"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	CreatedAt    time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

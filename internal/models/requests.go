package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report field names as they appear on the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var minFundingGoal = decimal.NewFromInt(100)

// ProjectRequest is the create/update payload for a project. The funding
// goal minimum and the future-deadline rule cannot be expressed as
// validator tags, so Validate checks them by hand.
type ProjectRequest struct {
	Title       string          `json:"title" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"required,min=10,max=5000"`
	Category    string          `json:"category" validate:"required"`
	FundingGoal decimal.Decimal `json:"fundingGoal"`
	Deadline    Date            `json:"deadline"`
	CreatorID   string          `json:"creatorId" validate:"required"`
	Tags        []string        `json:"tags" validate:"omitempty,dive,min=1"`
	ImageURL    string          `json:"imageUrl"`
}

// Validate returns a field name to message map, empty when the request is
// valid.
func (r *ProjectRequest) Validate() map[string]string {
	fieldErrors := map[string]string{}

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrors[fe.Field()] = validationMessage(fe)
			}
		}
	}
	if r.FundingGoal.LessThan(minFundingGoal) {
		fieldErrors["fundingGoal"] = "funding goal must be at least 100.00"
	}
	if r.Deadline.IsZero() {
		fieldErrors["deadline"] = "deadline is required"
	} else if !r.Deadline.After(Today()) {
		fieldErrors["deadline"] = "deadline must be in the future"
	}
	return fieldErrors
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ToProject builds a new draft project from the request. Status and the
// raised amount are never taken from the caller.
func (r *ProjectRequest) ToProject() *Project {
	return &Project{
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		FundingGoal:  r.FundingGoal,
		AmountRaised: decimal.Zero,
		Deadline:     r.Deadline,
		CreatorID:    r.CreatorID,
		Tags:         pq.StringArray(r.Tags),
		Status:       StatusDraft,
		ImageURL:     r.ImageURL,
	}
}

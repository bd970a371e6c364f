package transport

import "time"

type CreateJobRequest struct {
	Title              string         `json:"title" validate:"required"`
	Code               string         `json:"code" validate:"required"`
	Branch             string         `json:"branch" validate:"required"`
	Description        string         `json:"description"`
	Category           *string        `json:"category"`
	MinAFQTScore       *int           `json:"minAfqtScore" validate:"omitempty,min=1,max=99"`
	RequiredLineScores map[string]int `json:"requiredLineScores"`
}

type UpdateJobRequest struct {
	Title              *string        `json:"title" validate:"omitempty,min=1"`
	Code               *string        `json:"code" validate:"omitempty,min=1"`
	Branch             *string        `json:"branch" validate:"omitempty,min=1"`
	Description        *string        `json:"description"`
	Category           *string        `json:"category"`
	MinAFQTScore       *int           `json:"minAfqtScore" validate:"omitempty,min=1,max=99"`
	RequiredLineScores map[string]int `json:"requiredLineScores"`
}

type ListJobsQuery struct {
	Branch    string `form:"branch"`
	Category  string `form:"category"`
	Search    string `form:"search"`
	AFQTScore *int   `form:"afqtScore" validate:"omitempty,min=1,max=99"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type JobResponse struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Code               string         `json:"code"`
	Branch             string         `json:"branch"`
	Description        string         `json:"description"`
	Category           *string        `json:"category,omitempty"`
	MinAFQTScore       *int           `json:"minAfqtScore,omitempty"`
	RequiredLineScores map[string]int `json:"requiredLineScores"`
	IsActive           bool           `json:"isActive"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

type JobListResponse struct {
	Items      []JobResponse `json:"items"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

type BranchResponse struct {
	Branch   string `json:"branch"`
	JobCount int    `json:"jobCount"`
}

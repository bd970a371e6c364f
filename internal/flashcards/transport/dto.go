package transport

import "time"

type CreateFlashcardRequest struct {
	Front            string   `json:"front" validate:"required"`
	Back             string   `json:"back" validate:"required"`
	Category         string   `json:"category" validate:"required"`
	Difficulty       string   `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	Tags             []string `json:"tags"`
	EstimatedSeconds *int     `json:"estimatedSeconds" validate:"omitempty,min=1"`
}

type UpdateFlashcardRequest struct {
	Front            *string  `json:"front" validate:"omitempty,min=1"`
	Back             *string  `json:"back" validate:"omitempty,min=1"`
	Category         *string  `json:"category" validate:"omitempty,min=1"`
	Difficulty       *string  `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Tags             []string `json:"tags"`
	EstimatedSeconds *int     `json:"estimatedSeconds" validate:"omitempty,min=1"`
}

type ListFlashcardsQuery struct {
	Category   string `form:"category"`
	Difficulty string `form:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Tag        string `form:"tag"`
	Search     string `form:"search"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type FlashcardResponse struct {
	ID               string    `json:"id"`
	Front            string    `json:"front"`
	Back             string    `json:"back"`
	Category         string    `json:"category"`
	Difficulty       string    `json:"difficulty"`
	Tags             []string  `json:"tags"`
	EstimatedSeconds *int      `json:"estimatedSeconds,omitempty"`
	ReviewCount      int       `json:"reviewCount"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type FlashcardListResponse struct {
	Items      []FlashcardResponse `json:"items"`
	TotalCount int                 `json:"totalCount"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

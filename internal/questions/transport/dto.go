package transport

import "time"

type CreateQuestionRequest struct {
	Content          string   `json:"content" validate:"required"`
	Explanation      *string  `json:"explanation"`
	Options          []string `json:"options" validate:"required,min=2,max=6,dive,required"`
	CorrectIndex     int      `json:"correctIndex" validate:"min=0"`
	Category         string   `json:"category" validate:"required"`
	Difficulty       string   `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	Tags             []string `json:"tags"`
	Branch           *string  `json:"branch"`
	EstimatedSeconds *int     `json:"estimatedSeconds" validate:"omitempty,min=1"`
}

type UpdateQuestionRequest struct {
	Content          *string  `json:"content" validate:"omitempty,min=1"`
	Explanation      *string  `json:"explanation"`
	Options          []string `json:"options" validate:"omitempty,min=2,max=6,dive,required"`
	CorrectIndex     *int     `json:"correctIndex" validate:"omitempty,min=0"`
	Category         *string  `json:"category" validate:"omitempty,min=1"`
	Difficulty       *string  `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Tags             []string `json:"tags"`
	Branch           *string  `json:"branch"`
	EstimatedSeconds *int     `json:"estimatedSeconds" validate:"omitempty,min=1"`
}

type ListQuestionsQuery struct {
	Category   string `form:"category"`
	Difficulty string `form:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Branch     string `form:"branch"`
	Tag        string `form:"tag"`
	Search     string `form:"search"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type FigureUploadRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type PresignedURLResponse struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type QuestionResponse struct {
	ID               string    `json:"id"`
	Content          string    `json:"content"`
	Explanation      *string   `json:"explanation,omitempty"`
	Options          []string  `json:"options"`
	CorrectIndex     int       `json:"correctIndex"`
	Category         string    `json:"category"`
	Difficulty       string    `json:"difficulty"`
	Tags             []string  `json:"tags"`
	Branch           *string   `json:"branch,omitempty"`
	EstimatedSeconds *int      `json:"estimatedSeconds,omitempty"`
	HasFigure        bool      `json:"hasFigure"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type QuestionListResponse struct {
	Items      []QuestionResponse `json:"items"`
	TotalCount int                `json:"totalCount"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

package transport

import "time"

type QuestionResultRequest struct {
	QuestionID       string `json:"questionId" validate:"required,uuid"`
	IsCorrect        bool   `json:"isCorrect"`
	TimeSpentSeconds int    `json:"timeSpentSeconds" validate:"min=0"`
}

type CreateAttemptRequest struct {
	Category   string                  `json:"category" validate:"required"`
	Difficulty string                  `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	Questions  []QuestionResultRequest `json:"questions" validate:"required,min=1,max=200,dive"`
}

type ListAttemptsQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

type AttemptResponse struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

type AttemptListResponse struct {
	Items      []AttemptResponse `json:"items"`
	TotalCount int               `json:"totalCount"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

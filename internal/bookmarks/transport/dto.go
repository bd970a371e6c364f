package transport

import "time"

type ToggleBookmarkRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=QUESTION FLASHCARD MILITARY_JOB STUDY_GROUP"`
	ContentID   string `json:"contentId" validate:"required,uuid"`
}

type ListBookmarksQuery struct {
	ContentType string `form:"contentType" validate:"omitempty,oneof=QUESTION FLASHCARD MILITARY_JOB STUDY_GROUP"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	Limit       int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type ToggleBookmarkResponse struct {
	ContentType string `json:"contentType"`
	ContentID   string `json:"contentId"`
	Bookmarked  bool   `json:"bookmarked"`
}

type BookmarkResponse struct {
	ContentType string    `json:"contentType"`
	ContentID   string    `json:"contentId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookmarkListResponse struct {
	Items      []BookmarkResponse `json:"items"`
	TotalCount int                `json:"totalCount"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

package transport

import "time"

type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"max=2000"`
	Category    *string `json:"category"`
	Branch      *string `json:"branch"`
}

type ListGroupsQuery struct {
	Category string `form:"category"`
	Branch   string `form:"branch"`
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type GroupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    *string   `json:"category,omitempty"`
	Branch      *string   `json:"branch,omitempty"`
	OwnerID     string    `json:"ownerId"`
	MemberCount int       `json:"memberCount"`
	IsMember    bool      `json:"isMember"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type GroupListResponse struct {
	Items      []GroupResponse `json:"items"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

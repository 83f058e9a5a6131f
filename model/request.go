package model

import "time"

// ItemRequest is a user's ask for an item nobody lists yet.
type ItemRequest struct {
	ID          int64         `json:"id" db:"id"`
	Description string        `json:"description" db:"description"`
	RequesterID int64         `json:"requesterId" db:"requester_id"`
	Created     time.Time     `json:"created" db:"created_at"`
	Items       []RequestItem `json:"items" db:"-"`
}

// RequestItem is an item listed in answer to a request.
type RequestItem struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	OwnerID     int64  `json:"ownerId" db:"owner_id"`
	RequestID   int64  `json:"requestId" db:"request_id"`
}

// swagger:model CreateRequestReq
type CreateRequestReq struct {
	Description string `json:"description" validate:"required,notblank,max=200"`
}

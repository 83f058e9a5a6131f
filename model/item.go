package model

type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	OwnerID     int64  `json:"ownerId" db:"owner_id"`
	RequestID   *int64 `json:"requestId" db:"request_id"`
}

// ItemRef is the short item shape embedded in bookings.
type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemView is an item as rendered by GET /items and GET /items/:id.
// LastBooking and NextBooking are only filled for the owner.
type ItemView struct {
	Item
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
	Comments    []Comment     `json:"comments"`
}

// swagger:model CreateItemReq
type CreateItemReq struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank,max=1000"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

// swagger:model UpdateItemReq
type UpdateItemReq struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty,notblank,max=1000"`
	Available   *bool   `json:"available"`
}

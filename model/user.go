package model

type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// UserRef is the short user shape embedded in bookings.
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateUserReq represents user signup payload
// swagger:model CreateUserReq
type CreateUserReq struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,contains=@"`
}

// UpdateUserReq carries a partial update; nil fields are left untouched.
// swagger:model UpdateUserReq
type UpdateUserReq struct {
	Name  *string `json:"name" validate:"omitempty,notblank"`
	Email *string `json:"email" validate:"omitempty,contains=@"`
}

package model

import "shareit/util/apperr"

const (
	DefaultPageSize    = 10
	DefaultRequestSize = 20
	MaxPageSize        = 100
)

// Page is a plain offset window: skip From rows, return at most Size.
type Page struct {
	From int `validate:"gte=0"`
	Size int `validate:"gte=1,lte=100"`
}

func (p Page) Validate() error {
	if p.From < 0 {
		return apperr.Validation("from must not be negative")
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return apperr.Validation("size must be between 1 and 100")
	}
	return nil
}

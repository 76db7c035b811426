package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrUnauthorized
	ErrForbidden
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrNoAccount
	ErrPasswordMismatch
	ErrInternal
	ErrBookNotAdded
	ErrReviewNotAdded
)

package models

import "errors"

// Sentinel errors for the bidding core. Callers match them with errors.Is so
// that benign race outcomes (ErrProjectAlreadyClosed, ErrAlreadyChecked) stay
// distinguishable from validation failures and from infrastructure errors.
var (
	ErrInvalidAmount        = errors.New("amount must be a positive whole number")
	ErrInvalidRatio         = errors.New("split ratio must be between 0 and 1")
	ErrInvalidTransition    = errors.New("bid status transition not permitted")
	ErrBidNotFound          = errors.New("bid not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrSplitNotFound        = errors.New("split calculation not found")
	ErrProjectNotOpen       = errors.New("project is not open for bidding")
	ErrProjectAlreadyClosed = errors.New("project is already closed")
	ErrProjectNotClosed     = errors.New("project has no accepted bid yet")
	ErrUnauthorized         = errors.New("user is not allowed to perform this action")
	ErrAlreadyChecked       = errors.New("split calculation is already checked")
)

package interfaces

import "errors"

// Sentinel errors shared by all store backings. Handlers map these onto
// the HTTP taxonomy (404 for the *NotFound family, 401 for bad
// credentials, 400 for the rest).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrTripNotFound    = errors.New("trip not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")

	ErrPhoneTaken     = errors.New("phone number already in use")
	ErrNotEnoughSeats = errors.New("not enough empty seats")
	ErrWrongPassword  = errors.New("wrong password")
)

package set_accepting_bookings

// SetAcceptingRequest HTTP request model. Флаг обязателен, поэтому указатель.
type SetAcceptingRequest struct {
	AcceptingBookings *bool `json:"acceptingBookings"`
}

package domain

import "errors"

var (
	// ErrEmptyCart guards the move from cart review to client entry.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")
	// ErrIllegalTransition is returned for any move the state machine
	// does not allow. The current state is left unchanged.
	ErrIllegalTransition = errors.New("illegal checkout state transition")
)

// State is a position in the checkout flow.
type State string

const (
	StateIdle           State = "IDLE"
	StateCartReview     State = "CART_REVIEW"
	StateClientEntry    State = "CLIENT_ENTRY"
	StateClientFound    State = "CLIENT_FOUND"
	StateClientCreation State = "CLIENT_CREATION"
	StateConfirmed      State = "CONFIRMED"
)

func (s State) String() string {
	return string(s)
}

// transitions lists the legal forward moves. Cancellation back to
// StateIdle is always legal and handled separately.
var transitions = map[State][]State{
	StateIdle:           {StateCartReview},
	StateCartReview:     {StateCartReview, StateClientEntry},
	StateClientEntry:    {StateClientFound, StateClientCreation},
	StateClientCreation: {StateClientFound, StateClientEntry},
	StateClientFound:    {StateConfirmed},
	StateConfirmed:      {StateIdle},
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to State) bool {
	if to == StateIdle {
		return true // cancel is legal from anywhere
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

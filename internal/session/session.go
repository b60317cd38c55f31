// Package session models a request's authentication state as an explicit
// value that is passed along with the request context.
package session

import (
	"context"
	"errors"
	"fmt"
)

// Phase is the stage of an authentication attempt.
type Phase int

const (
	Anonymous Phase = iota
	Authenticating
	Authenticated
	Failed
)

func (p Phase) String() string {
	switch p {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrInvalidTransition is returned when a transition is not allowed from the
// current phase.
var ErrInvalidTransition = errors.New("invalid session transition")

// Principal identifies an authenticated user.
type Principal struct {
	UserID string
	Email  string
}

// State is an immutable authentication state. The zero value is Anonymous.
// Transition methods return a new State and leave the receiver unchanged.
type State struct {
	phase     Phase
	principal Principal
	reason    string
}

// New returns an anonymous state.
func New() State {
	return State{phase: Anonymous}
}

// Phase returns the current phase.
func (s State) Phase() Phase { return s.phase }

// Principal returns the authenticated principal. ok is false unless the
// state is Authenticated.
func (s State) Principal() (p Principal, ok bool) {
	if s.phase != Authenticated {
		return Principal{}, false
	}
	return s.principal, true
}

// Reason returns the failure reason of a Failed state, or "".
func (s State) Reason() string {
	if s.phase != Failed {
		return ""
	}
	return s.reason
}

// IsAuthenticated reports whether the state carries a principal.
func (s State) IsAuthenticated() bool {
	return s.phase == Authenticated
}

// Begin moves an anonymous state to Authenticating.
func (s State) Begin() (State, error) {
	if s.phase != Anonymous {
		return s, s.invalid("begin")
	}
	return State{phase: Authenticating}, nil
}

// Succeed completes an authentication attempt.
func (s State) Succeed(p Principal) (State, error) {
	if s.phase != Authenticating {
		return s, s.invalid("succeed")
	}
	return State{phase: Authenticated, principal: p}, nil
}

// Fail ends an authentication attempt with a reason.
func (s State) Fail(reason string) (State, error) {
	if s.phase != Authenticating {
		return s, s.invalid("fail")
	}
	return State{phase: Failed, reason: reason}, nil
}

// Logout returns to Anonymous from any phase.
func (s State) Logout() State {
	return State{phase: Anonymous}
}

func (s State) invalid(op string) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, op, s.phase)
}

type contextKey struct{}

// Attach returns a copy of ctx carrying s.
func Attach(ctx context.Context, s State) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the state attached to ctx, or an anonymous state.
func FromContext(ctx context.Context) State {
	if s, ok := ctx.Value(contextKey{}).(State); ok {
		return s
	}
	return New()
}

// Authenticate runs a full Begin then Succeed transition.
func Authenticate(p Principal) State {
	s, _ := New().Begin()
	s, _ = s.Succeed(p)
	return s
}

// Package authstate models the client's authentication state as a pure
// reducer over dispatched events. Durable-storage writes are not performed
// inside the transition: each reduction returns an Effect the caller executes
// against its token store, keeping the reducer itself side-effect free.
package authstate

import (
	"github.com/MohitKacha/Dev-connect-Social-media/internal/models"
)

// State is the immutable auth snapshot. IsAuthenticated is tri-state: nil
// until the first load settles, then true or false.
type State struct {
	Token           string
	IsAuthenticated *bool
	Loading         bool
	User            *models.PublicUser
}

// Initial builds the pre-load state from whatever token durable storage
// holds (empty when none).
func Initial(storedToken string) State {
	return State{
		Token:           storedToken,
		IsAuthenticated: nil,
		Loading:         true,
		User:            nil,
	}
}

// Effect tells the caller what to do with durable token storage after a
// transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectPersistToken
	EffectClearToken
)

// Event is a dispatched auth event.
type Event interface {
	isAuthEvent()
}

// UserLoaded fires when the current identity was fetched successfully.
type UserLoaded struct {
	User models.PublicUser
}

// RegisterSuccess fires when registration or login returned a token.
type RegisterSuccess struct {
	Token string
}

// RegisterFail fires when registration or login was rejected.
type RegisterFail struct{}

// AuthError fires when an authenticated request failed, including the
// identity fetch after startup.
type AuthError struct{}

func (UserLoaded) isAuthEvent()      {}
func (RegisterSuccess) isAuthEvent() {}
func (RegisterFail) isAuthEvent()    {}
func (AuthError) isAuthEvent()       {}

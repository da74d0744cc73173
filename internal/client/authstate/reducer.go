package authstate

func boolPtr(v bool) *bool { return &v }

// Reduce applies one event to the state and returns the next state plus the
// storage effect the caller must execute. Unknown events leave the state
// unchanged.
func Reduce(state State, event Event) (State, Effect) {
	switch ev := event.(type) {
	case UserLoaded:
		user := ev.User
		state.IsAuthenticated = boolPtr(true)
		state.Loading = false
		state.User = &user
		return state, EffectNone

	case RegisterSuccess:
		state.Token = ev.Token
		state.IsAuthenticated = boolPtr(true)
		state.Loading = false
		return state, EffectPersistToken

	case RegisterFail:
		state.IsAuthenticated = boolPtr(false)
		state.Loading = false
		return state, EffectClearToken

	case AuthError:
		state.Token = ""
		state.IsAuthenticated = boolPtr(false)
		state.Loading = false
		state.User = nil
		return state, EffectClearToken

	default:
		return state, EffectNone
	}
}

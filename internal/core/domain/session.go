package domain

// Session is the client-held authentication record. Only this triple is ever
// persisted; loading and error flags live in memory with the SessionStore.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Authenticated builds a session for a user holding token.
func Authenticated(user *User, token string) Session {
	s := Session{User: user, Token: token}
	return s.Normalize()
}

// Normalize enforces isAuthenticated <=> user and token present.
func (s Session) Normalize() Session {
	s.IsAuthenticated = s.User != nil && s.Token != ""
	return s
}

// IsAnonymous reports whether the session holds no identity at all.
func (s Session) IsAnonymous() bool {
	return s.User == nil && s.Token == ""
}

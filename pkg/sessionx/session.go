// Package sessionx implements stateless cookie sessions: a signed-token
// codec, the cookie transport, and a resolver that turns an inbound request
// into a typed Session value. Any server instance holding the shared signing
// secret can verify tokens issued by any other instance, so nothing here
// touches storage or holds state between requests.
package sessionx

// Role is the authorization tier carried inside a session token.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Session is the verified identity payload derived from a request's signed
// token. It is only ever produced by successful verification; anonymous
// requests are represented by a nil *Session.
//
// The role is the one the user held when the token was issued. Role changes
// take effect when the token expires or is reissued, not before; callers who
// need a fresher answer use Resolver.ResolveFresh.
type Session struct {
	UserID    string
	Email     string
	Name      string
	AvatarURL string
	Role      Role
}

// IsAdmin reports whether s is a live session holding the ADMIN role.
// Safe to call on a nil session.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

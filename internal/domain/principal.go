package domain

import "strings"

// Principal identifies a caller, donor or proposal recipient.
type Principal string

// AnonymousPrincipal is the identity assigned to unauthenticated callers.
const AnonymousPrincipal Principal = "2vxsx-fae"

// IsAnonymous reports whether p carries no authenticated identity.
func (p Principal) IsAnonymous() bool {
	trimmed := strings.TrimSpace(string(p))
	return trimmed == "" || Principal(trimmed) == AnonymousPrincipal
}

func (p Principal) String() string {
	return string(p)
}

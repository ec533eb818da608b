package constant

const (
	DefaultTokenType = "Bearer"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	MinPasswordLength = 8
	MaxPasswordLength = 128

	// LocalsPrincipal is the fiber locals key holding the authenticated caller.
	LocalsPrincipal = "principal"

	APIPrefix = "/api/v1"
)

package constants

const (
	MAX_PAGE_SIZE        = 100
	DEFAULT_PAGE         = 1
	DEFAULT_DETAIL_LIMIT = 25
	DEFAULT_CHAIN_LIMIT  = 50

	// Cookies set on login
	ACCESS_TOKEN_COOKIE  = "access_token"
	REFRESH_TOKEN_COOKIE = "refresh_token"
	BEARER_PREFIX        = "Bearer "
)

// Package auth provides authentication and authorization for the API.
//
// Clients authenticate with a bearer JWT obtained from the register or login
// endpoints. The token carries the user ID and username, signed with HS256.
//
// # Configuration
//
//	JWT_SECRET=<secret>   # Auto-generated if empty (tokens do not survive restarts)
//	TOKEN_EXPIRY=168h     # Token lifetime (7 days default)
//	BCRYPT_COST=10        # bcrypt cost factor
//
// # Usage
//
//	service := auth.NewService(usersRepo, cfg.Auth)
//	user, token, err := service.Register("alice", "alice@x.com", "secret1")
//
//	// Gin middleware resolving the bearer token into the request context:
//	router.Use(auth.NewMiddleware(service).Handler())
//	userID := auth.GetUserID(c)
package auth

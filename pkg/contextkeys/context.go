package contextkeys

// Custom key type to avoid context key collisions.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB
// (pool or transaction) is stored.
const DBContextKey = contextKey("db")

// ClaimsContextKey is the key under which the authenticated token
// claims are stored after the auth middleware runs.
const ClaimsContextKey = contextKey("claims")

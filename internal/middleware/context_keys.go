package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the context.
const actorIDKey = contextKey("actorID")

// defaultActorID stamps audit fields when no actor header is supplied
// (setup tooling, internal jobs).
const defaultActorID = "system"

// ActorMiddleware reads the X-Actor-ID header into the context so audit
// fields can be stamped. Authentication itself is an external collaborator;
// the ledger core only records who acted.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		if actorID == "" {
			actorID = defaultActorID
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
func GetActorIDFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return defaultActorID
	}
	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return defaultActorID
	}
	return actorID
}

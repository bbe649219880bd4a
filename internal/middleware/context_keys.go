package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the authenticated actor's ID.
const actorIDKey = contextKey("actorID")

// GetActorFromContext retrieves the authenticated actor identity from the Gin
// context. It returns the actor ID and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(actorIDKey)); exists {
		if actor, ok := v.(string); ok {
			return actor, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware stores it there
	// for code that only sees a context.Context.
	if v := c.Request.Context().Value(actorIDKey); v != nil {
		if actor, ok := v.(string); ok {
			return actor, true
		}
	}
	return "", false
}

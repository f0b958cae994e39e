package session

import (
	"github.com/gin-gonic/gin"

	"github.com/campusvoice/student-portal/pkg/middleware"
)

// Track records every authenticated request in the session store so that
// background refresh knows which users are active and which token to use.
// Must run after the auth middleware.
func Track(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := middleware.GetUserID(c); err == nil {
			if token := middleware.GetBearerToken(c); token != "" {
				store.Touch(c.Request.Context(), userID.String(), token)
			}
		}
		c.Next()
	}
}

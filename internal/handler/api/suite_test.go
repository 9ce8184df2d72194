//go:build unit

package api_test

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"table-booking/internal/domain/user"
)

const (
	guestToken = "guest-token"
	staffToken = "staff-token"
)

// fakeAuth stands in for the JWT middleware: the staff token authenticates a
// manager, any other token the guest with guestID.
func fakeAuth(guestID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.GetHeader("Authorization") {
		case "":
		case "Bearer " + staffToken:
			c.Set("user_id", uuid.New())
			c.Set("user_role", user.RoleManager)
		default:
			c.Set("user_id", guestID)
			c.Set("user_role", user.RoleUser)
		}
		c.Next()
	}
}

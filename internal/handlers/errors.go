package handlers

import (
	"errors"
	"net/http"

	"sendloop-api/internal/store"

	"github.com/gin-gonic/gin"
)

// writeStoreError maps a store error kind onto the HTTP response.
func writeStoreError(c *gin.Context, err error) {
	var se *store.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case store.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": se.Message, "field": se.Field})
		case store.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": se.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage operation failed"})
		}
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

// requireUser pulls the authenticated user ID out of the context; the JWT
// middleware put it there.
func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return "", false
	}
	return userID, true
}

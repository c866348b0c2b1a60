package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"opdrape-backend/models"
)

func findOneAndUpdateAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	return exists && role == models.RoleAdmin
}

// requestError carries the HTTP status a validation/lookup failure maps to.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func newRequestError(status int, message string) *requestError {
	return &requestError{status: status, message: message}
}

// respondError maps a flow error onto the HTTP taxonomy: typed request
// errors keep their status, anything else is a 500 with the underlying
// message.
func respondError(c *gin.Context, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		c.JSON(reqErr.status, gin.H{"error": reqErr.message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

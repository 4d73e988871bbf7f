package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/ShubhamPatel2305/Vroomify/helpers"
	"github.com/ShubhamPatel2305/Vroomify/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Authenticate resolves the caller from the raw authorization header (the
// client sends the signed token without a "Bearer " prefix), verifies that
// the encoded user still exists, and attaches id/name/email to the request
// context for downstream handlers.
func Authenticate(tokens *helpers.TokenMaker, userCollection *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.GetHeader("authorization")
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"token missing"}})
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(clientToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"errors": []string{"Enter a valid token"}})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var user models.User
		err = userCollection.FindOne(ctx, bson.M{"user_id": claims.Uid}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"errors": []string{"No user with this id exists."}})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
			c.Abort()
			return
		}

		c.Set("uid", user.UserID)
		c.Set("name", user.Name)
		c.Set("email", user.Email)
		c.Next()
	}
}

package routes

import (
	"github.com/ShubhamPatel2305/Vroomify/controllers"
	"github.com/gin-gonic/gin"
)

// UserRoutes wires the account surface. Signup, signin and the OTP flows are
// public; profile management requires the auth middleware.
func UserRoutes(incomingRoutes *gin.Engine, uc *controllers.UserController, authenticate gin.HandlerFunc) {
	incomingRoutes.POST("/user/signup", uc.Signup())
	incomingRoutes.POST("/user/signin", uc.Signin())
	incomingRoutes.POST("/user/verify", uc.RequestVerifyOTP())
	incomingRoutes.PUT("/user/verify", uc.VerifyOTP())
	incomingRoutes.POST("/user/reset", uc.RequestResetOTP())
	incomingRoutes.PUT("/user/reset", uc.ResetPassword())

	authed := incomingRoutes.Group("/user", authenticate)
	authed.GET("/profile", uc.Profile())
	authed.PUT("/edit-name", uc.EditName())
	authed.POST("/verifytoken", uc.VerifyToken())
}

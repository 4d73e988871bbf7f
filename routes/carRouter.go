package routes

import (
	"github.com/ShubhamPatel2305/Vroomify/controllers"
	"github.com/gin-gonic/gin"
)

// CarRoutes wires the car lifecycle. add-car is open because the owner
// identity travels in the form body; everything else reads the caller from
// the bearer token.
func CarRoutes(incomingRoutes *gin.Engine, cc *controllers.CarController, authenticate gin.HandlerFunc) {
	incomingRoutes.POST("/car/add-car", cc.AddCar())

	authed := incomingRoutes.Group("/car", authenticate)
	authed.GET("/my-cars", cc.MyCars())
	authed.GET("/:id", cc.GetCar())
	authed.DELETE("/delete/:id", cc.DeleteCar())
	authed.PUT("/edit-details", cc.EditDetails())
	authed.PUT("/edit-images", cc.EditImages())
}

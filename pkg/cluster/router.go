package cluster

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	BasicAuthentication(context *gin.Context)
}

func Routes(r gin.IRouter, authenticationMiddleware AuthenticationMiddleware, handler Handler) {
	router := r.Group("")
	router.Use(authenticationMiddleware.BasicAuthentication)
	router.POST("/clusters", handler.Create)
	router.GET("/clusters", handler.FindAll)
	router.GET("/clusters/:id", handler.Find)
	router.PUT("/clusters/:id", handler.Update)
	router.DELETE("/clusters/:id", handler.Delete)
}

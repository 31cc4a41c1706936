package security

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	BasicAuthentication(context *gin.Context)
}

func Routes(r gin.IRouter, authenticationMiddleware AuthenticationMiddleware, handler Handler) {
	router := r.Group("/security")
	router.Use(authenticationMiddleware.BasicAuthentication)
	router.POST("", handler.Create)
	router.GET("", handler.FindAll)
	router.GET("/:id", handler.Find)
	router.DELETE("/:id", handler.Delete)
}

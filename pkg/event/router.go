package event

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	BasicAuthentication(context *gin.Context)
}

func Routes(r gin.IRouter, authenticationMiddleware AuthenticationMiddleware, handler Handler) {
	router := r.Group("")
	router.Use(authenticationMiddleware.BasicAuthentication)
	router.GET("/events", handler.StreamEvents)
}

package soap

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	BasicAuthentication(context *gin.Context)
}

func Routes(r gin.IRouter, authenticationMiddleware AuthenticationMiddleware, handler Handler) {
	router := r.Group("/channel/soap")
	router.Use(authenticationMiddleware.BasicAuthentication)
	router.GET("/", handler.Index)
	router.POST("/create/", handler.Create)
	router.POST("/edit/", handler.Edit)
	router.POST("/delete/:id/cluster/:cluster_id/", handler.Delete)
}

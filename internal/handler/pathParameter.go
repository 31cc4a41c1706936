package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPathParameter parses the path parameter as an ID. The request is aborted with 400 if it isn't
// a valid uint32.
func GetPathParameter(c *gin.Context, parameter string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(parameter), 10, 32)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("error parsing %q: %v", parameter, err))
		return 0, false
	}
	return uint(id), true
}

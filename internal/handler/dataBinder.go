package handler

import (
	"fmt"

	"github.com/dhis2-sre/channel-admin/internal/errdef"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// DataBinder binds the request body into req. The console posts its forms url encoded while API
// clients send JSON or multipart forms, so all three are accepted.
func DataBinder(c *gin.Context, req any) error {
	switch c.ContentType() {
	case binding.MIMEJSON, binding.MIMEMultipartPOSTForm, binding.MIMEPOSTForm:
	default:
		reason := fmt.Sprintf("%s only accepts content of type %s, %s or %s", c.FullPath(), binding.MIMEJSON, binding.MIMEMultipartPOSTForm, binding.MIMEPOSTForm)
		return errdef.NewUnsupportedMediaType("%s", reason)
	}

	if err := c.ShouldBind(req); err != nil {
		return errdef.NewBadRequest("Error binding data: %+v", err)
	}

	return nil
}

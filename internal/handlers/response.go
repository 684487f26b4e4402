package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
)

// RespondError converts any service error to its HTTP shape. This is the only
// place the error taxonomy is mapped to responses; handlers never pick status
// codes themselves.
func RespondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	body := gin.H{
		"error": ae.Error(),
		"code":  ae.Code,
	}
	if len(ae.Details) > 0 {
		body["details"] = ae.Details
	}
	c.JSON(ae.Status, body)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

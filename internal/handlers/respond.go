package handlers

import (
	"log"
	"net/http"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a classified error onto its HTTP status and envelope.
// Unclassified errors become a generic 500 without leaking detail.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnknown {
		log.Printf("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse("INTERNAL_ERROR", "Internal server error"))
		return
	}
	c.JSON(kind.HTTPStatus(), utils.CreateErrorResponse(apperr.CodeOf(err), apperr.MessageOf(err)))
}

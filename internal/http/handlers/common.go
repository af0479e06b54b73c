package handlers

import (
	"fmt"
	"net/http"

	"github.com/Omkar290703/Ai-IV-Planner/internal/http/middleware"
	"github.com/Omkar290703/Ai-IV-Planner/internal/utils"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "request body is not valid JSON", err.Error())
		return false
	}
	return true
}

func logHandlerError(c *gin.Context, err error) {
	utils.LogEvent(middleware.GetRequestID(c), "http", c.FullPath(), fmt.Sprintf("err=%v", err))
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

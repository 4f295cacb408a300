package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lesson-rag/internal/helper"
	"lesson-rag/internal/models"
)

const requestIDHeader = "X-Request-ID"

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = helper.RequestID()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Handled request")
	}
}

func recoverToDetail(c *gin.Context, recovered any) {
	log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
		Detail: fmt.Sprint(recovered),
	})
}

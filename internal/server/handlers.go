package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lesson-rag/internal/models"
)

func (s *Server) hello(c *gin.Context) {
	c.JSON(http.StatusOK, models.AskResponse{Result: models.HelloMessage})
}

func (s *Server) ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, models.NewError(models.ErrValidation, err))
		return
	}

	result, err := s.svc.Query(c.Request.Context(), req.Key(), *req.Query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AskResponse{Result: result})
}

func (s *Server) rewrite(c *gin.Context) {
	var req models.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, models.NewError(models.ErrValidation, err))
		return
	}

	text, err := s.svc.Rewrite(c.Request.Context(), req.Key(), *req.SystemPrompt)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.RewriteResponse{RewrittenText: text})
}

// fail maps every error to the same 500 shape. The kind is only logged.
func fail(c *gin.Context, err error) {
	kind := "unknown"
	if k := models.KindOf(err); k != nil {
		kind = k.Error()
	}
	log.Error().Err(err).Str("kind", kind).Str("path", c.FullPath()).Msg("Request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Detail: err.Error()})
}

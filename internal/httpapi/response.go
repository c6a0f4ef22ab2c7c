package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/zfogg/sonicindex/internal/apierr"
	"github.com/zfogg/sonicindex/internal/logger"
)

// respondError renders an *apierr.Error at its mapped status code, logging
// server-side failures.
func respondError(c *gin.Context, err error) {
	apiErr, ok := err.(*apierr.Error)
	if !ok {
		apiErr = apierr.Wrap(apierr.Io, "", err)
	}

	status := apiErr.Kind.StatusCode()
	if status >= 500 {
		logger.ErrorWithFields("http request failed", apiErr)
	}
	c.JSON(status, gin.H{"error": apiErr})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/provider"
	"github.com/Shivanisinghay/Epsilon/internal/repository"
	"github.com/Shivanisinghay/Epsilon/internal/service"
	"github.com/Shivanisinghay/Epsilon/internal/validate"
)

// respondError is the single boundary between the service error taxonomy
// and HTTP statuses. Validation failures carry per-field details; anything
// unexpected is logged and returned as a generic message so internals do
// not leak.
func respondError(c *gin.Context, log zerolog.Logger, err error, fallback string) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": verrs,
		})
		return
	}

	var provErr *provider.Error
	if errors.As(err, &provErr) {
		respondProviderError(c, log, provErr)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, repository.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
	case errors.Is(err, repository.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is already taken"})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, repository.ErrContentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this resource"})
	case errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already submitted a review"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func respondProviderError(c *gin.Context, log zerolog.Logger, err *provider.Error) {
	log.Error().
		Str("provider", err.Provider).
		Str("kind", string(err.Kind)).
		Int("upstream_status", err.Status).
		Msg("provider request failed")

	switch err.Kind {
	case provider.KindAuth:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
	case provider.KindRateLimited:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
	case provider.KindTimeout:
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Request timeout - please try again"})
	case provider.KindUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model is currently loading, please try again in a few minutes"})
	case provider.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Model not found"})
	case provider.KindInvalid:
		status := err.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": "Invalid prompt or parameters"})
	default:
		status := err.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": "API request failed"})
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shivanisinghay/Epsilon/internal/middleware"
	"github.com/Shivanisinghay/Epsilon/internal/models"
	"github.com/Shivanisinghay/Epsilon/internal/service"
)

type contentResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Type             string    `json:"type"`
	Prompt           string    `json:"prompt"`
	GeneratedContent string    `json:"generatedContent"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toContentResponse(item models.ContentItem) contentResponse {
	return contentResponse{
		ID:               item.ID,
		UserID:           item.UserID,
		Type:             string(item.Type),
		Prompt:           item.Prompt,
		GeneratedContent: item.GeneratedContent,
		CreatedAt:        item.CreatedAt,
	}
}

func (h HandlerSet) ListContent(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.content.List(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch content")
		return
	}

	resp := make([]contentResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toContentResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

type saveContentRequest struct {
	Type             string `json:"type"`
	Prompt           string `json:"prompt"`
	GeneratedContent string `json:"generatedContent"`
}

func (h HandlerSet) SaveContent(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req saveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := h.content.Create(c.Request.Context(), claims.UserID, service.CreateContentInput{
		Type:             req.Type,
		Prompt:           req.Prompt,
		GeneratedContent: req.GeneratedContent,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to save content")
		return
	}

	c.JSON(http.StatusCreated, toContentResponse(item))
}

func (h HandlerSet) DeleteContent(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.content.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete content")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content removed successfully"})
}

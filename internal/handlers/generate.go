package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shivanisinghay/Epsilon/internal/service"
)

type generateTextRequest struct {
	Type       string `json:"type"`
	Prompt     string `json:"prompt"`
	Variations int    `json:"variations"`
}

func (h HandlerSet) GenerateText(c *gin.Context) {
	var req generateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing type or prompt"})
		return
	}

	text, err := h.generate.GenerateText(c.Request.Context(), service.TextInput{
		Type:       req.Type,
		Prompt:     req.Prompt,
		Variations: req.Variations,
	})
	if err != nil {
		respondError(c, h.log, err, "Text generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

func (h HandlerSet) GenerateImage(c *gin.Context) {
	var req generateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	result, err := h.generate.GenerateImage(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, h.log, err, "Image generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"image":    result.DataURI,
		"savedAs":  result.Filename,
		"imageUrl": result.URL,
		"message":  "Image generated and saved successfully",
	})
}

// ListImages exposes what is still on disk; entries disappear as the
// retention sweep removes their files.
func (h HandlerSet) ListImages(c *gin.Context) {
	images, err := h.generate.ListImages()
	if err != nil {
		respondError(c, h.log, err, "Failed to list images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"images":  images,
		"total":   len(images),
	})
}

type generateAudioRequest struct {
	Text string `json:"text"`
}

func (h HandlerSet) GenerateAudio(c *gin.Context) {
	var req generateAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	result, err := h.generate.GenerateAudio(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, h.log, err, "Audio generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"audioPath": result.Path,
		"message":   "Audio generated successfully",
	})
}

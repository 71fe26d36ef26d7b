package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shivanisinghay/Epsilon/internal/middleware"
	"github.com/Shivanisinghay/Epsilon/internal/models"
	"github.com/Shivanisinghay/Epsilon/internal/service"
)

type reviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewResponse(review models.Review) reviewResponse {
	return reviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		Name:      review.Name,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func (h HandlerSet) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.ListApproved(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch reviews")
		return
	}

	resp := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp = append(resp, toReviewResponse(review))
	}
	c.JSON(http.StatusOK, resp)
}

type submitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Name    string `json:"name"`
}

func (h HandlerSet) SubmitReview(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	name := req.Name
	if name == "" {
		name = claims.Email
	}

	review, err := h.reviews.Submit(c.Request.Context(), claims.UserID, name, service.SubmitReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to submit review")
		return
	}

	c.JSON(http.StatusCreated, toReviewResponse(review))
}

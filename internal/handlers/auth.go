package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shivanisinghay/Epsilon/internal/models"
	"github.com/Shivanisinghay/Epsilon/internal/service"
)

type userResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Username  *string    `json:"username,omitempty"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	DOB       *time.Time `json:"dob,omitempty"`
	Gender    *string    `json:"gender,omitempty"`
	Bio       *string    `json:"bio,omitempty"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// toUserResponse strips everything clients must never see: the password
// hash and the raw avatar bytes (served separately by GetAvatar).
func toUserResponse(user models.User) userResponse {
	resp := userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		DOB:       user.DOB,
		Gender:    user.Gender,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
	if len(user.AvatarData) > 0 {
		resp.AvatarURL = "/api/user/avatar/" + user.ID
	}
	return resp
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) SignUp(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    toUserResponse(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    toUserResponse(result.User),
		"message": "Login successful",
	})
}

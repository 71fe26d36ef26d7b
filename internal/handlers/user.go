package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shivanisinghay/Epsilon/internal/middleware"
	"github.com/Shivanisinghay/Epsilon/internal/service"
)

// maxAvatarBytes caps profile-picture uploads at 5MB.
const maxAvatarBytes = 5 << 20

var allowedAvatarMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

type profileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	DOB      string `json:"dob"`
	Gender   string `json:"gender"`
	Bio      string `json:"bio"`
	Password string `json:"password"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var dob *time.Time
	if req.DOB != "" {
		parsed, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date of birth, expected YYYY-MM-DD"})
			return
		}
		dob = &parsed
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), claims.UserID, service.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Phone:    req.Phone,
		DOB:      dob,
		Gender:   req.Gender,
		Bio:      req.Bio,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err, "Profile update failed")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h HandlerSet) UploadProfilePicture(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("profilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB limit"})
		return
	}

	mime := strings.ToLower(header.Header.Get("Content-Type"))
	if _, ok := allowedAvatarMIMEs[mime]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	if len(data) > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB limit"})
		return
	}

	user, err := h.auth.SaveAvatar(c.Request.Context(), claims.UserID, data, mime)
	if err != nil {
		respondError(c, h.log, err, "Profile picture upload failed")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// GetAvatar serves the stored profile picture. Public: avatars are shown on
// reviews and shared pages without a session.
func (h HandlerSet) GetAvatar(c *gin.Context) {
	data, mime, err := h.auth.GetAvatar(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch avatar")
		return
	}

	c.Data(http.StatusOK, mime, data)
}

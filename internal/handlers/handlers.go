package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/config"
	"github.com/Shivanisinghay/Epsilon/internal/media"
	"github.com/Shivanisinghay/Epsilon/internal/middleware"
	"github.com/Shivanisinghay/Epsilon/internal/provider"
	"github.com/Shivanisinghay/Epsilon/internal/repository"
	"github.com/Shivanisinghay/Epsilon/internal/service"
	"github.com/Shivanisinghay/Epsilon/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	content  *service.ContentService
	stats    *service.StatsService
	reviews  *service.ReviewService
	generate *service.GenerateService
	counter  middleware.Counter
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(
	log zerolog.Logger,
	db *pgxpool.Pool,
	cache *redis.Client,
	mediaStore *media.Store,
	archive *storage.Archive,
	cfg *config.AppConfig,
) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	gemini := provider.NewGemini(cfg.Provider.GeminiAPIKey, cfg.Provider.GeminiModel, cfg.Provider.TextTimeout)
	huggingface := provider.NewHuggingFace(cfg.Provider.HFAPIKey, cfg.Provider.HFModel, cfg.Provider.ImageTimeout)
	elevenlabs := provider.NewElevenLabs(cfg.Provider.ElevenLabsAPIKey, cfg.Provider.ElevenLabsVoiceID, cfg.Provider.AudioTimeout)

	var counter middleware.Counter
	if cache != nil {
		counter = middleware.NewRedisCounter(cache)
	}

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     service.NewAuthService(userRepo, cfg, log),
		content:  service.NewContentService(contentRepo, log),
		stats:    service.NewStatsService(userRepo, contentRepo, cache, log),
		reviews:  service.NewReviewService(reviewRepo, log),
		generate: service.NewGenerateService(gemini, huggingface, elevenlabs, mediaStore, archive, log),
		counter:  counter,
		db:       db,
		cache:    cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	generalLimit := h.limit("general", h.cfg.RateLimit.Max, h.cfg.RateLimit.Window)
	authLimit := h.limit("auth", h.cfg.RateLimit.Max, h.cfg.RateLimit.Window)
	aiLimit := h.limit("ai", h.cfg.RateLimit.AIMax, h.cfg.RateLimit.AIWindow)
	requireAuth := middleware.Auth(h.cfg.Security.JWTSecret)

	auth := router.Group("/auth", authLimit)
	auth.POST("/register", h.SignUp)
	auth.POST("/login", h.Login)

	content := router.Group("/content", generalLimit, requireAuth)
	content.GET("", h.ListContent)
	content.POST("", h.SaveContent)
	content.DELETE("/:id", h.DeleteContent)

	user := router.Group("/user", generalLimit)
	user.GET("/avatar/:userId", h.GetAvatar)
	profile := user.Group("", requireAuth)
	profile.PUT("/profile", h.UpdateProfile)
	profile.POST("/profile-picture", h.UploadProfilePicture)

	router.GET("/stats", generalLimit, requireAuth, h.Stats)

	reviews := router.Group("/reviews", generalLimit)
	reviews.GET("", h.ListReviews)
	reviews.POST("", requireAuth, h.SubmitReview)

	// Generation endpoints are deliberately outside the auth gateway,
	// matching the product's anonymous-trial behavior; the tighter AI
	// rate limit is the only brake.
	ai := router.Group("", aiLimit)
	ai.POST("/text/generate", h.GenerateText)
	ai.POST("/image/generate/image", h.GenerateImage)
	ai.GET("/image/images", h.ListImages)
	ai.POST("/audio/generate/audio", h.GenerateAudio)
}

// limit degrades to a pass-through when no counter is wired (tests).
func (h HandlerSet) limit(scope string, max int, window time.Duration) gin.HandlerFunc {
	if h.counter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(h.counter, scope, max, window, h.log)
}

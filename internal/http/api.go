package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auth-service/internal/config"
	"auth-service/internal/domain"
	"auth-service/internal/service"
)

// Handler wires HTTP routes to the auth service.
type Handler struct {
	auth   service.AuthService
	cfg    config.Config
	logger *logrus.Logger
}

func NewHandler(auth service.AuthService, cfg config.Config, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:   auth,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterRoutes mounts the endpoints both at the root and under /api, the
// prefix the browser form calls.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	for _, g := range []*gin.RouterGroup{router.Group(""), router.Group("/api")} {
		g.POST("/register", h.register)
		g.POST("/login", h.login)
		g.GET("/health", h.health)
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or Email already exists."})
		default:
			h.logger.Errorf("registration error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Server error during registration.",
				"hint":  "Check if DB environment variables are set",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully!",
		"user":    userToResponse(user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credentials are required."})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Credentials are required."})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials."})
		default:
			h.logger.Errorf("login error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during login."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user":    userToResponse(user),
	})
}

// health reports liveness plus a masked view of the database configuration,
// enough to debug a misconfigured deployment without leaking settings.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"config": gin.H{
			"host":        maskValue(h.cfg.DB.Host, 5),
			"port":        h.cfg.DB.Port,
			"database":    maskValue(h.cfg.DB.Name, 3),
			"hasPassword": h.cfg.DB.Password != "",
		},
	})
}

func maskValue(value string, keep int) string {
	if value == "" {
		return "not set"
	}
	if len(value) > keep {
		value = value[:keep]
	}
	return value + "..."
}

func userToResponse(user *domain.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

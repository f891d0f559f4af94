package handler

import (
	"errors"
	"net/http"

	"mygamelist/backend/internal/store"
	"mygamelist/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// region --- DTOs ---

// SignupInput defines the structure for account creation.
type SignupInput struct {
	Username string `json:"username" binding:"required" example:"ana"`
	Email    string `json:"email" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// SignupUserResponse mirrors the row returned by account creation.
type SignupUserResponse struct {
	UserID   uint   `json:"user_id" example:"1"`
	Username string `json:"username" example:"ana"`
	Email    string `json:"email" example:"a@x.com"`
}

// LoginUserResponse is the authenticated user, with the identifier exposed
// as "id" as the login page expects.
type LoginUserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"ana"`
	Email    string `json:"email" example:"a@x.com"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message" example:"A message"`
}

// endregion

// AuthHandler serves the signup and login endpoints.
type AuthHandler struct {
	users *store.UserStore
}

func NewAuthHandler(users *store.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

// Signup godoc
// @Summary      Create an account
// @Description  Registers a new user and returns the created account with a token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body SignupInput true "Signup Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  MessageResponse
// @Failure      409  {object}  MessageResponse
// @Failure      500  {object}  MessageResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email and password are required."})
		return
	}

	exists, err := h.users.Exists(c.Request.Context(), input.Email, input.Username)
	if err != nil {
		log.Errorf("signup: existence check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"message": "User or email already exists."})
		return
	}

	user, err := h.users.Create(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		// Concurrent signups can slip past the pre-check and land on the
		// unique constraint instead.
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "User or email already exists."})
			return
		}
		log.Errorf("signup: create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	token, err := jwt.GenerateToken(user.UserID)
	if err != nil {
		log.Errorf("signup: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Success!",
		"user": SignupUserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Email:    user.Email,
		},
		"token": token,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates by email and password and returns the user with a token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  MessageResponse
// @Failure      401  {object}  MessageResponse "Invalid credentials"
// @Failure      500  {object}  MessageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		log.Errorf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error while logging in."})
		return
	}
	if user == nil {
		// Unknown email and wrong password are indistinguishable on purpose.
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
		return
	}

	token, err := jwt.GenerateToken(user.UserID)
	if err != nil {
		log.Errorf("login: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user": LoginUserResponse{
			ID:       user.UserID,
			Username: user.Username,
			Email:    user.Email,
		},
		"token": token,
	})
}

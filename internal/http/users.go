package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adilibs/adilibs/internal/auth"
	"github.com/adilibs/adilibs/internal/entities"
)

// UsersStore defines database operations for profile management.
type UsersStore interface {
	GetUserByID(id uint) (*entities.User, error)
	UpdateUser(id uint, updates map[string]any) (*entities.User, error)
	GetAllUsers() ([]entities.User, error)
}

type UsersController struct {
	store   UsersStore
	service *auth.Service
}

func NewUsersController(store UsersStore, service *auth.Service) *UsersController {
	return &UsersController{store: store, service: service}
}

type updateProfileRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	ProfileImage *string `json:"profileImage"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// GetProfile returns the caller's profile.
// GET /api/users/profile
func (uc *UsersController) GetProfile(c *gin.Context) {
	user, err := uc.store.GetUserByID(GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "User not found")
			return
		}
		respondInternalError(c, err, "get profile")
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// UpdateProfile changes username, email or profile image.
// PUT /api/users/profile
func (uc *UsersController) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updates := map[string]any{}
	setIfPresent(updates, "username", req.Username)
	setIfPresent(updates, "email", req.Email)
	setIfPresent(updates, "profile_image", req.ProfileImage)

	user, err := uc.store.UpdateUser(GetUserID(c), updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "User not found")
			return
		}
		respondInternalError(c, err, "update profile")
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// ChangePassword verifies the current password and stores a new one.
// PUT /api/users/password
func (uc *UsersController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		respondBadRequest(c, "Current and new password are required")
		return
	}

	err := uc.service.ChangePassword(GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidPassword):
			respondBadRequest(c, "Current password is incorrect")
		case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "change password")
		}
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// ListUsers returns every account as a public projection. Admin only.
// GET /api/users
func (uc *UsersController) ListUsers(c *gin.Context) {
	users, err := uc.store.GetAllUsers()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}

	public := make([]entities.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	c.JSON(http.StatusOK, public)
}

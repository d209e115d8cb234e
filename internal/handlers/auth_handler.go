package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campustix/campustix/internal/helpers"
	"github.com/campustix/campustix/internal/middleware"
	"github.com/campustix/campustix/internal/services"
)

type AuthHandler struct {
	auth  *services.AuthService
	users services.UserStore
}

func NewAuthHandler(auth *services.AuthService, users services.UserStore) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type RegisterRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	Role           string  `json:"role" binding:"required,oneof=STUDENT ORGANIZER"`
	StudentID      *string `json:"student_id"`
	OrganizationID *string `json:"organization_id"`
}

type LoginRequest struct {
	EmailOrStudentID string `json:"email_or_student_id" binding:"required"`
	Password         string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid input. Please check your fields.")
		return
	}

	input := services.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		StudentID: req.StudentID,
	}
	if req.OrganizationID != nil {
		orgID, err := uuid.Parse(*req.OrganizationID)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid organization ID.")
			return
		}
		input.OrganizationID = &orgID
	}

	user, err := h.auth.Register(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account registered successfully.",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid input. Please check your fields.")
		return
	}

	user, pair, err := h.auth.Login(req.EmailOrStudentID, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user": gin.H{
			"id":             user.ID,
			"name":           user.Name,
			"email":          user.Email,
			"role":           user.Role,
			"account_status": user.AccountStatus,
		},
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid input. Please check your fields.")
		return
	}

	accessToken, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
		return
	}

	user, err := h.users.FindByID(claims.UserID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, helpers.CodeNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, user)
}

type ReviewUserRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE REJECTED SUSPENDED"`
}

// ReviewUserStatus is the admin review of an account, primarily organizer
// applications. Route is gated on the ADMIN role by middleware.
func (h *AuthHandler) ReviewUserStatus(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid user ID.")
		return
	}

	var req ReviewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.CodeValidation, "Invalid input. Please check your fields.")
		return
	}

	user, err := h.auth.ReviewAccount(userID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account status updated.",
		"user":    user,
	})
}

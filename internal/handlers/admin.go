package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mindsender/mindsender/db"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/mindsender/mindsender/internal/types"
	"github.com/rs/zerolog/log"
)

type AdminUpdateUserRequest struct {
	Role *string `json:"role"`
	Plan *string `json:"plan"`
}

func AdminListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Order("id asc").Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
			Plan:  user.Plan,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"users": response})
}

func AdminUpdateUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req AdminUpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		updates["role"] = *req.Role
	}

	if req.Plan != nil {
		if !models.ValidPlan(*req.Plan) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan"})
			return
		}
		updates["plan"] = *req.Plan
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	result := db.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to update user")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

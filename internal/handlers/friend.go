package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mindsender/mindsender/db"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/mindsender/mindsender/internal/types"
	"github.com/mindsender/mindsender/internal/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SendFriendRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type FriendRequestResponse struct {
	ID     uint                  `json:"id"`
	Status string                `json:"status"`
	Sender types.ProfileResponse `json:"sender"`
}

func SendFriendRequest(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SendFriendRequestRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var target models.User

	err = db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&target).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to look up user by email")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if target.ID == userID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a friend request to yourself"})
		return
	}

	request := models.FriendRequest{
		SenderID:   userID,
		ReceiverID: target.ID,
		Status:     models.FriendRequestPending,
	}

	// The pair_key unique index rejects a second row for the same pair, no
	// matter which side sent it.
	if err := db.DB.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A request or friendship already exists"})
			return
		}
		log.Error().Err(err).Msg("Failed to create friend request")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Friend request sent"})
}

func ListFriendRequests(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var requests []models.FriendRequest

	err = db.DB.Preload("Sender").
		Where("receiver_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at desc").
		Find(&requests).Error

	if err != nil {
		log.Error().Err(err).Msg("Failed to list friend requests")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]FriendRequestResponse, 0, len(requests))

	for _, request := range requests {
		response = append(response, FriendRequestResponse{
			ID:     request.ID,
			Status: request.Status,
			Sender: types.ProfileResponse{
				ID:    request.Sender.ID,
				Name:  request.Sender.Name,
				Email: request.Sender.Email,
			},
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"requests": response})
}

func AcceptFriendRequest(ctx *gin.Context) {
	resolveFriendRequest(ctx, models.FriendRequestAccepted)
}

func RejectFriendRequest(ctx *gin.Context) {
	resolveFriendRequest(ctx, models.FriendRequestRejected)
}

// resolveFriendRequest flips a pending request addressed to the caller. The
// receiver-scoped predicate doubles as the authorization check.
func resolveFriendRequest(ctx *gin.Context, status string) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	requestID, err := strconv.ParseUint(ctx.Param("request_id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	result := db.DB.Model(&models.FriendRequest{}).
		Where("id = ? AND receiver_id = ? AND status = ?", requestID, userID, models.FriendRequestPending).
		Update("status", status)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to update friend request")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Friend request " + status})
}

func ListFriends(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var requests []models.FriendRequest

	err = db.DB.
		Where("status = ? AND (sender_id = ? OR receiver_id = ?)", models.FriendRequestAccepted, userID, userID).
		Find(&requests).Error

	if err != nil {
		log.Error().Err(err).Msg("Failed to list friendships")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	friendIDs := make([]uint, 0, len(requests))

	for _, request := range requests {
		if request.SenderID == userID {
			friendIDs = append(friendIDs, request.ReceiverID)
		} else {
			friendIDs = append(friendIDs, request.SenderID)
		}
	}

	friends := make([]types.ProfileResponse, 0, len(friendIDs))

	if len(friendIDs) > 0 {
		var users []models.User

		if err := db.DB.Where("id IN ?", friendIDs).Find(&users).Error; err != nil {
			log.Error().Err(err).Msg("Failed to fetch friend profiles")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		for _, user := range users {
			friends = append(friends, types.ProfileResponse{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
			})
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"friends": friends})
}

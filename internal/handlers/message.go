package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mindsender/mindsender/db"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/mindsender/mindsender/internal/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func SendMessage(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	receiverID, err := parseUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req SendMessageRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	// Messaging requires an accepted friendship between the two users.
	var friendship models.FriendRequest

	err = db.DB.
		Where("pair_key = ? AND status = ?", models.PairKeyFor(userID, receiverID), models.FriendRequestAccepted).
		First(&friendship).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You can only message accepted friends"})
			return
		}
		log.Error().Err(err).Msg("Failed to check friendship")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	message := models.DirectMessage{
		SenderID:   userID,
		ReceiverID: receiverID,
		Content:    req.Content,
	}

	if err := db.DB.Create(&message).Error; err != nil {
		log.Error().Err(err).Msg("Failed to store message")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Best effort: receivers with an open websocket get the message pushed;
	// everyone else sees it on their next fetch.
	PushDirectMessage(receiverID, message)

	ctx.JSON(http.StatusCreated, gin.H{"message": message})
}

func ListMessages(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	friendID, err := parseUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var messages []models.DirectMessage

	err = db.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, friendID, friendID, userID).
		Order("created_at asc").
		Find(&messages).Error

	if err != nil {
		log.Error().Err(err).Msg("Failed to list messages")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

func parseUserIDParam(ctx *gin.Context) (uint, error) {
	raw := ctx.Param("user_id")

	if raw == "" {
		return 0, errors.New("User ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid user ID")
	}

	return uint(id), nil
}

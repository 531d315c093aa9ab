package handlers

import (
	"github.com/dataroom/backend/internal/middleware"
	"github.com/dataroom/backend/internal/models"
	"github.com/dataroom/backend/pkg/logger"
	"github.com/dataroom/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

// Delete removes the caller's account and every row scoped to it, files and
// folders first so no orphaned metadata survives the user row.
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.DB.WithContext(c.Context()).
		Where("user_email = ?", user.Email).Delete(&models.File{}).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "account_files_delete_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete account")
	}
	if err := h.DB.WithContext(c.Context()).
		Where("user_email = ?", user.Email).Delete(&models.Folder{}).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "account_folders_delete_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete account")
	}
	if err := h.DB.WithContext(c.Context()).
		Delete(&models.User{}, "id = ?", user.ID).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "account_delete_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete account")
	}

	logger.InfoWithUser(user.ID.String(), "account_deleted", map[string]interface{}{
		"email": user.Email,
	})
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "account deleted"})
}

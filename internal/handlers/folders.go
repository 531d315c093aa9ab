package handlers

import (
	"strings"

	"github.com/dataroom/backend/internal/middleware"
	"github.com/dataroom/backend/internal/models"
	"github.com/dataroom/backend/internal/services"
	"github.com/dataroom/backend/pkg/foldertree"
	"github.com/dataroom/backend/pkg/logger"
	"github.com/dataroom/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxFolderNameLength = 30

type FoldersHandler struct {
	DB        *gorm.DB
	Collision *services.CollisionService
}

func NewFoldersHandler(db *gorm.DB, collision *services.CollisionService) *FoldersHandler {
	return &FoldersHandler{DB: db, Collision: collision}
}

// List returns every folder the caller owns as a flat slice, ordered by
// creation time. Tree assembly happens in Tree; this endpoint feeds
// move-target dropdowns and the CLI.
func (h *FoldersHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	folders, err := h.allFolders(c, user.Email)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "folders_list_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch folders")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"folders": folders})
}

// Tree returns the caller's folders as a nested hierarchy. With ?search=
// the tree is pruned to matching folders plus the ancestors needed to
// reach them.
func (h *FoldersHandler) Tree(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	folders, err := h.allFolders(c, user.Email)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "folder_tree_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch folders")
	}

	tree := foldertree.Build(folders)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		tree = foldertree.Filter(tree, search)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"tree": tree})
}

// Path returns the breadcrumb trail from the root to one folder. Deep
// trails are collapsed for display: the response carries the visible
// segments plus the hidden middle run separately.
func (h *FoldersHandler) Path(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	folderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	var folder models.Folder
	if err := h.DB.WithContext(c.Context()).
		First(&folder, "id = ? AND user_email = ?", folderID, user.Email).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "folder not found")
	}

	folders, err := h.allFolders(c, user.Email)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "folder_path_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch folders")
	}

	trail := foldertree.Breadcrumb(folders, &folderID)
	visible, hidden := foldertree.Collapse(trail)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"path":     visible,
		"ellipsis": hidden,
	})
}

type createFolderRequest struct {
	Name           string `json:"name"`
	ParentFolderID string `json:"parentFolderId"`
}

// Create adds a folder under the requested parent. A parent that cannot be
// resolved to a folder the caller owns is silently replaced by the root
// level, mirroring the upload fallback. Sibling folders may share a name.
func (h *FoldersHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "folder name is required")
	}
	if len(name) > maxFolderNameLength {
		return utils.Error(c, fiber.StatusBadRequest, "folder name must be 30 characters or less")
	}

	parentID := h.resolveParent(c, user.Email, req.ParentFolderID)

	folder := models.Folder{
		UserEmail:      user.Email,
		Name:           name,
		ParentFolderID: parentID,
	}
	if err := h.DB.WithContext(c.Context()).Create(&folder).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "folder_create_failed", err, map[string]interface{}{
			"name": name,
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to create folder")
	}

	logger.InfoWithUser(user.ID.String(), "folder_created", map[string]interface{}{
		"folder_id": folder.ID.String(),
	})
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"folder": folder})
}

func (h *FoldersHandler) resolveParent(c *fiber.Ctx, email, raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	id, err := parseUUID(raw)
	if err != nil {
		logger.Warn("parent_folder_invalid", map[string]interface{}{"parent_folder_id": raw})
		return nil
	}

	var parent models.Folder
	err = h.DB.WithContext(c.Context()).
		First(&parent, "id = ? AND user_email = ?", id, email).Error
	if err != nil {
		logger.Warn("parent_folder_missing", map[string]interface{}{"parent_folder_id": raw})
		return nil
	}
	return &parent.ID
}

type renameFolderRequest struct {
	FolderID string `json:"folderId"`
	Name     string `json:"name"`
}

func (h *FoldersHandler) Rename(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req renameFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if req.FolderID == "" || name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "folderId and name are required")
	}
	if len(name) > maxFolderNameLength {
		return utils.Error(c, fiber.StatusBadRequest, "folder name must be 30 characters or less")
	}

	folderID, err := parseUUID(req.FolderID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folderId")
	}

	var folder models.Folder
	if err := h.DB.WithContext(c.Context()).
		First(&folder, "id = ? AND user_email = ?", folderID, user.Email).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "folder not found")
	}

	exists, err := h.Collision.FolderExists(c.Context(), user.Email, name, folder.ParentFolderID, &folder.ID)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "folder_collision_check_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to rename folder")
	}
	if exists {
		return utils.Error(c, fiber.StatusConflict, "a folder with this name already exists in this location")
	}

	if err := h.DB.WithContext(c.Context()).Model(&folder).
		Update("name", name).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "folder_rename_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to rename folder")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"folder": folder})
}

// Delete removes a folder and everything beneath it.
func (h *FoldersHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	folderIDRaw := c.Query("folderId")
	if folderIDRaw == "" {
		return utils.Error(c, fiber.StatusBadRequest, "folderId is required")
	}
	folderID, err := parseUUID(folderIDRaw)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folderId")
	}

	var folder models.Folder
	if err := h.DB.WithContext(c.Context()).
		First(&folder, "id = ? AND user_email = ?", folderID, user.Email).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "folder not found")
	}

	if err := deleteFolderRecursive(c.Context(), h.DB, user.Email, folder.ID); err != nil {
		logger.ErrorWithUser(user.ID.String(), "folder_delete_failed", err, map[string]interface{}{
			"folder_id": folder.ID.String(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete folder")
	}

	logger.InfoWithUser(user.ID.String(), "folder_deleted", map[string]interface{}{
		"folder_id": folder.ID.String(),
	})
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "folder deleted"})
}

func (h *FoldersHandler) allFolders(c *fiber.Ctx, email string) ([]models.Folder, error) {
	var folders []models.Folder
	err := h.DB.WithContext(c.Context()).
		Where("user_email = ?", email).
		Order("created_at ASC").
		Find(&folders).Error
	return folders, err
}

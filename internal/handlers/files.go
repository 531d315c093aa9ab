package handlers

import (
	"strings"
	"time"

	"github.com/dataroom/backend/internal/middleware"
	"github.com/dataroom/backend/internal/models"
	"github.com/dataroom/backend/internal/services"
	"github.com/dataroom/backend/pkg/logger"
	"github.com/dataroom/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilesHandler struct {
	DB        *gorm.DB
	Collision *services.CollisionService
}

func NewFilesHandler(db *gorm.DB, collision *services.CollisionService) *FilesHandler {
	return &FilesHandler{DB: db, Collision: collision}
}

// List returns the files and folders for one dashboard view. Exactly one
// file filter applies per request, in precedence order: search, then
// starred, then folderId. An absent or empty folderId means the root level
// (folder_id IS NULL). The starred view returns no folders.
func (h *FilesHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	search := strings.TrimSpace(c.Query("search"))
	starredOnly := c.Query("starred") == "true"
	folderIDRaw := strings.TrimSpace(c.Query("folderId"))

	var folderID *uuid.UUID
	if folderIDRaw != "" {
		id, err := parseUUID(folderIDRaw)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid folderId")
		}
		folderID = &id
	}

	filesQuery := h.DB.WithContext(c.Context()).Where("user_email = ?", user.Email)
	switch {
	case search != "":
		filesQuery = filesQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	case starredOnly:
		filesQuery = filesQuery.Where("starred = ?", true)
	case folderID == nil:
		filesQuery = filesQuery.Where("folder_id IS NULL")
	default:
		filesQuery = filesQuery.Where("folder_id = ?", *folderID)
	}

	var files []models.File
	if err := filesQuery.Order("uploaded_at DESC").Find(&files).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "files_list_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch files")
	}

	folders := []models.Folder{}
	if !starredOnly {
		foldersQuery := h.DB.WithContext(c.Context()).Where("user_email = ?", user.Email)
		if folderID == nil {
			foldersQuery = foldersQuery.Where("parent_folder_id IS NULL")
		} else {
			foldersQuery = foldersQuery.Where("parent_folder_id = ?", *folderID)
		}
		if err := foldersQuery.Order("created_at ASC").Find(&folders).Error; err != nil {
			logger.ErrorWithUser(user.ID.String(), "folders_list_failed", err, nil)
			return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch folders")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"files":   files,
		"folders": folders,
	})
}

type pickedFile struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	IconURL        string `json:"iconUrl"`
	MimeType       string `json:"mimeType"`
	LastEditedDate string `json:"lastEditedDate"`
}

type createFilesRequest struct {
	Files    []pickedFile `json:"files"`
	FolderID string       `json:"folderId"`
}

// BulkCreate registers a batch of picker selections. Each entry whose
// (name, mimeType) is free in the target folder is persisted immediately;
// the rest are echoed back as conflicts. A single response reports both
// groups, so a batch never fails as a whole.
func (h *FilesHandler) BulkCreate(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req createFilesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Files) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "files are required")
	}

	// Validate the whole batch before the first insert, so a malformed
	// entry can never leave a partially persisted batch behind.
	for _, picked := range req.Files {
		if strings.TrimSpace(picked.Name) == "" || picked.URL == "" {
			return utils.Error(c, fiber.StatusBadRequest, "each file needs a name and url")
		}
	}

	folderID := h.resolveTargetFolder(c, user.Email, req.FolderID)

	created := []models.File{}
	conflicts := []pickedFile{}
	for _, picked := range req.Files {
		name := strings.TrimSpace(picked.Name)

		exists, err := h.Collision.FileExists(c.Context(), user.Email, name, picked.MimeType, folderID, nil)
		if err != nil {
			logger.ErrorWithUser(user.ID.String(), "file_collision_check_failed", err, nil)
			return utils.Error(c, fiber.StatusInternalServerError, "failed to save files")
		}
		if exists {
			conflicts = append(conflicts, picked)
			continue
		}

		file := models.File{
			UserEmail: user.Email,
			Name:      name,
			URL:       picked.URL,
			IconURL:   picked.IconURL,
			MimeType:  picked.MimeType,
			FolderID:  folderID,
		}
		if picked.LastEditedDate != "" {
			if edited, err := time.Parse(time.RFC3339, picked.LastEditedDate); err == nil {
				file.LastEdited = &edited
			}
		}
		if err := h.DB.WithContext(c.Context()).Create(&file).Error; err != nil {
			logger.ErrorWithUser(user.ID.String(), "file_create_failed", err, map[string]interface{}{
				"name": name,
			})
			return utils.Error(c, fiber.StatusInternalServerError, "failed to save files")
		}
		created = append(created, file)
	}

	logger.InfoWithUser(user.ID.String(), "files_created", map[string]interface{}{
		"created":   len(created),
		"conflicts": len(conflicts),
	})

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"created":   created,
		"conflicts": conflicts,
	})
}

// resolveTargetFolder maps the requested folder id to a verified folder
// owned by the caller. Anything that does not resolve, including an
// unparsable id, falls back to the root level with a warning rather than
// failing the upload.
func (h *FilesHandler) resolveTargetFolder(c *fiber.Ctx, email, raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	id, err := parseUUID(raw)
	if err != nil {
		logger.Warn("target_folder_invalid", map[string]interface{}{"folder_id": raw})
		return nil
	}

	var folder models.Folder
	err = h.DB.WithContext(c.Context()).
		First(&folder, "id = ? AND user_email = ?", id, email).Error
	if err != nil {
		logger.Warn("target_folder_missing", map[string]interface{}{"folder_id": raw})
		return nil
	}
	return &folder.ID
}

type renameFileRequest struct {
	FileID string `json:"fileId"`
	Name   string `json:"name"`
}

func (h *FilesHandler) Rename(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req renameFileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if req.FileID == "" || name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "fileId and name are required")
	}

	fileID, err := parseUUID(req.FileID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid fileId")
	}

	var file models.File
	if err := h.DB.WithContext(c.Context()).
		First(&file, "id = ? AND user_email = ?", fileID, user.Email).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "file not found")
	}

	exists, err := h.Collision.FileExists(c.Context(), user.Email, name, file.MimeType, file.FolderID, &file.ID)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "file_collision_check_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to rename file")
	}
	if exists {
		return utils.Error(c, fiber.StatusConflict, "a file with this name and type already exists in this folder")
	}

	now := time.Now()
	if err := h.DB.WithContext(c.Context()).Model(&file).
		Updates(map[string]interface{}{"name": name, "last_edited": now}).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "file_rename_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to rename file")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"file": file})
}

type starFileRequest struct {
	FileID  string `json:"fileId"`
	Starred *bool  `json:"starred"`
}

func (h *FilesHandler) UpdateStarred(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req starFileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.FileID == "" || req.Starred == nil {
		return utils.Error(c, fiber.StatusBadRequest, "fileId and starred are required")
	}

	fileID, err := parseUUID(req.FileID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid fileId")
	}

	var file models.File
	if err := h.DB.WithContext(c.Context()).
		First(&file, "id = ? AND user_email = ?", fileID, user.Email).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "file not found")
	}

	if err := h.DB.WithContext(c.Context()).Model(&file).
		Update("starred", *req.Starred).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "file_star_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update file")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"file": file})
}

// Delete removes either a single file (?fileId=) or, with ?all=true, every
// file and folder the caller owns. Deleting an id that no longer exists is
// treated as success; the end state is the same.
func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	if c.Query("all") == "true" {
		if err := h.DB.WithContext(c.Context()).
			Where("user_email = ?", user.Email).Delete(&models.File{}).Error; err != nil {
			logger.ErrorWithUser(user.ID.String(), "files_delete_all_failed", err, nil)
			return utils.Error(c, fiber.StatusInternalServerError, "failed to delete files")
		}
		if err := h.DB.WithContext(c.Context()).
			Where("user_email = ?", user.Email).Delete(&models.Folder{}).Error; err != nil {
			logger.ErrorWithUser(user.ID.String(), "folders_delete_all_failed", err, nil)
			return utils.Error(c, fiber.StatusInternalServerError, "failed to delete folders")
		}

		logger.InfoWithUser(user.ID.String(), "workspace_cleared", nil)
		return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "all files and folders deleted"})
	}

	fileIDRaw := c.Query("fileId")
	if fileIDRaw == "" {
		return utils.Error(c, fiber.StatusBadRequest, "fileId is required")
	}
	fileID, err := parseUUID(fileIDRaw)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid fileId")
	}

	if err := h.DB.WithContext(c.Context()).
		Where("id = ? AND user_email = ?", fileID, user.Email).
		Delete(&models.File{}).Error; err != nil {
		logger.ErrorWithUser(user.ID.String(), "file_delete_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete file")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "file deleted"})
}

type bulkDeleteRequest struct {
	FileIDs   []string `json:"fileIds"`
	FolderIDs []string `json:"folderIds"`
}

type bulkDeleteResult struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// BulkDelete removes a mixed selection of files and folders in one request.
// Items are processed independently; one failure does not stop the rest.
// Folders cascade the same way as a single folder delete.
func (h *FilesHandler) BulkDelete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req bulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.FileIDs) == 0 && len(req.FolderIDs) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "fileIds or folderIds are required")
	}

	results := []bulkDeleteResult{}
	deleted, failed := 0, 0

	record := func(result bulkDeleteResult) {
		if result.Deleted {
			deleted++
		} else {
			failed++
		}
		results = append(results, result)
	}

	for _, raw := range req.FileIDs {
		result := bulkDeleteResult{ID: raw, Type: "file"}
		fileID, err := parseUUID(raw)
		if err != nil {
			result.Error = "invalid id"
			record(result)
			continue
		}
		if err := h.DB.WithContext(c.Context()).
			Where("id = ? AND user_email = ?", fileID, user.Email).
			Delete(&models.File{}).Error; err != nil {
			result.Error = "delete failed"
			record(result)
			continue
		}
		result.Deleted = true
		record(result)
	}

	for _, raw := range req.FolderIDs {
		result := bulkDeleteResult{ID: raw, Type: "folder"}
		folderID, err := parseUUID(raw)
		if err != nil {
			result.Error = "invalid id"
			record(result)
			continue
		}
		if err := deleteFolderRecursive(c.Context(), h.DB, user.Email, folderID); err != nil {
			result.Error = "delete failed"
			record(result)
			continue
		}
		result.Deleted = true
		record(result)
	}

	logger.InfoWithUser(user.ID.String(), "bulk_delete", map[string]interface{}{
		"deleted": deleted,
		"failed":  failed,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"deleted": deleted,
		"failed":  failed,
		"results": results,
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nextmimo/nextmimo_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload badge icon
// @Description Upload an icon image for a badge
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param badgeId path string true "Badge ID"
// @Param file formData file true "Icon image"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/badges/{badgeId}/icon [post]
func (h *MediaHandler) UploadBadgeIcon(c *fiber.Ctx) error {
	badgeID := c.Params("badgeId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file")
	}

	resp, err := h.mediaSvc.UploadBadgeIcon(badgeID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Icon uploaded", resp)
}

// @Summary Upload lesson thumbnail
// @Description Upload a thumbnail image for a lesson
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Param file formData file true "Thumbnail image"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/lessons/{lessonId}/thumbnail [post]
func (h *MediaHandler) UploadLessonThumbnail(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file")
	}

	resp, err := h.mediaSvc.UploadLessonThumbnail(lessonID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Thumbnail uploaded", resp)
}

// @Summary Get media asset
// @Description Get a stored media asset's metadata
// @Tags content
// @Accept json
// @Produce json
// @Param assetId path string true "Asset ID"
// @Success 200 {object} shared.Response{data=dto.MediaAssetResponse}
// @Router /api/v1/media/{assetId} [get]
func (h *MediaHandler) GetAsset(c *fiber.Ctx) error {
	resp, err := h.mediaSvc.GetAsset(c.Params("assetId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Delete media asset
// @Description Remove a stored media asset and its file
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param assetId path string true "Asset ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/media/{assetId} [delete]
func (h *MediaHandler) DeleteAsset(c *fiber.Ctx) error {
	if err := h.mediaSvc.DeleteAsset(c.Params("assetId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Asset deleted", nil)
}

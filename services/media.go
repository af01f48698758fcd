package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/nextmimo/nextmimo_api/dto"
	"github.com/nextmimo/nextmimo_api/model"
	"github.com/nextmimo/nextmimo_api/shared"
)

type MediaService struct {
	context.DefaultService
	sqlSvc   *SqlService
	minioSvc *MinIOService
	baseURL  string
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.baseURL = os.Getenv("BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// ==================== MEDIA UPLOAD METHODS ====================

func (svc *MediaService) UploadBadgeIcon(badgeID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: JPG, PNG, WEBP, SVG")
	}

	if file.Size > 1*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Badge icon too large. Maximum size: 1MB")
	}

	resp, err := svc.uploadFile(file, shared.MediaKindBadgeIcon, badgeID)
	if err != nil {
		return nil, err
	}

	badge, err := svc.sqlSvc.GetBadge(badgeID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Badge not found")
	}
	badge.IconURL = resp.URL
	if err := svc.sqlSvc.UpdateBadge(badge); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update badge icon")
	}

	return resp, nil
}

func (svc *MediaService) UploadLessonThumbnail(lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: JPG, PNG, WEBP")
	}

	if file.Size > 2*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Thumbnail file too large. Maximum size: 2MB")
	}

	resp, err := svc.uploadFile(file, shared.MediaKindLessonThumbnail, lessonID)
	if err != nil {
		return nil, err
	}

	lesson, err := svc.sqlSvc.GetLesson(lessonID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Lesson not found")
	}
	lesson.ThumbnailURL = resp.URL
	if err := svc.sqlSvc.UpdateLesson(lesson); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update lesson thumbnail")
	}

	return resp, nil
}

// GetAsset returns asset metadata with a short-lived presigned storage
// URL the client can fetch the bytes from.
func (svc *MediaService) GetAsset(id string) (*dto.MediaAssetResponse, error) {
	asset, err := svc.sqlSvc.GetMediaAsset(id)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Media asset not found")
	}

	url, err := svc.minioSvc.GetFileURL(asset.ObjectName, time.Hour)
	if err != nil {
		url = asset.URL
	}

	return &dto.MediaAssetResponse{
		ID:       asset.ID,
		Kind:     asset.Kind,
		URL:      url,
		FileSize: asset.FileSize,
	}, nil
}

func (svc *MediaService) DeleteAsset(id string) error {
	asset, err := svc.sqlSvc.GetMediaAsset(id)
	if err != nil {
		return shared.NewNotFoundError(err, "Media asset not found")
	}

	if err := svc.minioSvc.DeleteFile(asset.ObjectName); err != nil {
		return shared.NewInternalError(err, "Failed to delete file from storage")
	}

	return svc.sqlSvc.DeleteMediaAsset(id)
}

func (svc *MediaService) uploadFile(file *multipart.FileHeader, kind, ownerID string) (*dto.MediaUploadResponse, error) {
	ext := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("%s_%d%s", ownerID, time.Now().Unix(), ext)

	var subDir string
	switch kind {
	case shared.MediaKindBadgeIcon:
		subDir = "badge_icons"
	case shared.MediaKindLessonThumbnail:
		subDir = "thumbnails"
	default:
		subDir = "misc"
	}

	objectName := fmt.Sprintf("%s/%s", subDir, fileName)

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Failed to read uploaded file")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := svc.minioSvc.UploadFile(objectName, src, file.Size, contentType); err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload file")
	}

	id, _ := uuid.NewV7()
	url := fmt.Sprintf("%s/api/v1/media/%s", svc.baseURL, id.String())

	asset := &model.MediaAsset{
		ID:         id.String(),
		Kind:       kind,
		OwnerID:    ownerID,
		ObjectName: objectName,
		FileName:   file.Filename,
		MimeType:   contentType,
		FileSize:   file.Size,
		URL:        url,
	}
	if err := svc.sqlSvc.CreateMediaAsset(asset); err != nil {
		return nil, shared.NewInternalError(err, "Failed to record media asset")
	}

	return &dto.MediaUploadResponse{
		AssetID:  asset.ID,
		Kind:     kind,
		URL:      url,
		FileSize: file.Size,
	}, nil
}

func (svc *MediaService) isValidImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".svg":
		return true
	}
	return false
}

package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/infrastructure/storage"
	"github.com/wellgym/wellgym-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.UseCase
	objects        storage.ObjectStore
}

func NewProfileHandler(profileUseCase *profile.UseCase, objects storage.ObjectStore) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		objects:        objects,
	}
}

// GetMe handles GET /profile/me. A missing remote row is not an error: the
// merged snapshot with defaults comes back.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	p, err := h.profileUseCase.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMe handles PUT /profile/me (bulk edit form).
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.profileUseCase.SaveBulk(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// FieldUpdateRequest is a single-field edit (inline toggles and pickers).
type FieldUpdateRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value" binding:"required"`
}

// PatchMe handles PATCH /profile/me.
func (h *ProfileHandler) PatchMe(c *gin.Context) {
	var req FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.profileUseCase.UpdateField(c.Request.Context(), req.Field, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CategoriesRequest replaces one level's preferred category list.
type CategoriesRequest struct {
	Level      string   `json:"level" binding:"required,fitlevel"`
	Categories []string `json:"categories" binding:"required"`
}

// PutCategories handles PUT /profile/me/categories.
func (h *ProfileHandler) PutCategories(c *gin.Context) {
	var req CategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	level, err := domain.ParseLevel(req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown level"})
		return
	}

	p, err := h.profileUseCase.ReplaceCategoriesForLevel(c.Request.Context(), level, req.Categories)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AvatarRequest carries a data-URL encoded image, as the mobile client sends
// it.
type AvatarRequest struct {
	Image string `json:"image" binding:"required"`
}

// UploadAvatar handles POST /profile/me/avatar: store the image, then persist
// the public URL as a confirmed field write.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	contentType, data, err := decodeDataURL(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	current, err := h.profileUseCase.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	path := fmt.Sprintf("%s/%d%s", current.ID, time.Now().UnixNano(), extensionFor(contentType))
	url, err := h.objects.Upload(c.Request.Context(), path, data, contentType)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "avatar upload failed"})
		return
	}

	p, err := h.profileUseCase.UpdateField(c.Request.Context(), domain.ColAvatarURL, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// decodeDataURL splits "data:<mime>;base64,<data>".
func decodeDataURL(s string) (contentType string, data []byte, err error) {
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(meta, "data:") {
		return "", nil, fmt.Errorf("invalid image data url")
	}
	contentType = strings.TrimPrefix(meta, "data:")
	contentType = strings.TrimSuffix(contentType, ";base64")

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid image encoding")
	}
	return contentType, data, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

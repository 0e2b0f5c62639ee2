package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/internal/linkcheck"
	"github.com/navhub-dev/navhub/internal/models"
	"github.com/navhub-dev/navhub/internal/repository"
	"github.com/navhub-dev/navhub/internal/types"
	"github.com/navhub-dev/navhub/internal/utils"
	"go.uber.org/zap"
)

type CreateTagRequest struct {
	Name        string            `json:"name" binding:"required"`
	URL         string            `json:"url" binding:"required"`
	Logo        *string           `json:"logo"`
	Description *string           `json:"description"`
	CategoryID  types.OptionalInt `json:"categoryId"`
	SortOrder   types.OptionalInt `json:"sortOrder"`
}

type UpdateTagRequest struct {
	Name        *string              `json:"name"`
	URL         *string              `json:"url"`
	Logo        types.NullableString `json:"logo"`
	Description types.NullableString `json:"description"`
	CategoryID  types.OptionalInt    `json:"categoryId"`
	SortOrder   types.OptionalInt    `json:"sortOrder"`
}

type TagHandler struct {
	tags    *repository.TagRepository
	checker *linkcheck.Checker
	logger  *zap.Logger
}

func NewTagHandler(tags *repository.TagRepository, checker *linkcheck.Checker, logger *zap.Logger) *TagHandler {
	return &TagHandler{tags: tags, checker: checker, logger: logger}
}

func (h *TagHandler) ListTags(ctx *gin.Context) {
	tags, err := h.tags.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, tags)
}

func (h *TagHandler) CreateTag(ctx *gin.Context) {
	var body CreateTagRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !body.CategoryID.Set || body.CategoryID.Value <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "A valid categoryId is required"})
		return
	}

	tag := models.Tag{
		Name:        body.Name,
		URL:         body.URL,
		Logo:        body.Logo,
		Description: body.Description,
		CategoryID:  uint(body.CategoryID.Value),
		SortOrder:   body.SortOrder.Or(0),
	}

	if err := h.tags.Create(ctx.Request.Context(), &tag); err != nil {
		h.tagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tag)
}

func (h *TagHandler) UpdateTag(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		invalidID(ctx)
		return
	}

	var body UpdateTagRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{}

	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.URL != nil {
		updates["url"] = *body.URL
	}
	if body.Logo.Set {
		updates["logo"] = body.Logo.Value
	}
	if body.Description.Set {
		updates["description"] = body.Description.Value
	}
	if body.CategoryID.Set && body.CategoryID.Value > 0 {
		updates["category_id"] = uint(body.CategoryID.Value)
	}
	if body.SortOrder.Set {
		updates["sort_order"] = body.SortOrder.Value
	}

	tag, err := h.tags.Update(ctx.Request.Context(), id, updates)

	if err != nil {
		h.tagError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		invalidID(ctx)
		return
	}

	if err := h.tags.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}

// CheckTag probes the bookmark URL and reports whether it answers.
func (h *TagHandler) CheckTag(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		invalidID(ctx)
		return
	}

	tag, err := h.tags.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, h.checker.Check(ctx.Request.Context(), tag.URL))
}

// tagError reports a missing target category as a client error; the tag
// itself being absent stays a 404.
func (h *TagHandler) tagError(ctx *gin.Context, err error) {
	if errors.Is(err, models.ErrCategoryNotFound) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
		return
	}
	respondError(ctx, h.logger, err)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/internal/models"
	"github.com/navhub-dev/navhub/internal/repository"
	"github.com/navhub-dev/navhub/internal/types"
	"github.com/navhub-dev/navhub/internal/utils"
	"go.uber.org/zap"
)

type CreateCategoryRequest struct {
	Name      string            `json:"name" binding:"required"`
	SortOrder types.OptionalInt `json:"sortOrder"`
}

type UpdateCategoryRequest struct {
	Name      *string           `json:"name"`
	SortOrder types.OptionalInt `json:"sortOrder"`
}

type CategoryHandler struct {
	categories *repository.CategoryRepository
	logger     *zap.Logger
}

func NewCategoryHandler(categories *repository.CategoryRepository, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

func (h *CategoryHandler) ListCategories(ctx *gin.Context) {
	categories, err := h.categories.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(ctx *gin.Context) {
	var body CreateCategoryRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category := models.Category{
		Name:      body.Name,
		SortOrder: body.SortOrder.Or(0),
	}

	if err := h.categories.Create(ctx.Request.Context(), &category); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		invalidID(ctx)
		return
	}

	var body UpdateCategoryRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{}

	if body.Name != nil {
		updates["name"] = *body.Name
	}

	if body.SortOrder.Set {
		updates["sort_order"] = body.SortOrder.Value
	}

	category, err := h.categories.Update(ctx.Request.Context(), id, updates)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		invalidID(ctx)
		return
	}

	if err := h.categories.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

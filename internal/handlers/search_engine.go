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

type CreateSearchEngineRequest struct {
	Name        string             `json:"name" binding:"required"`
	URL         string             `json:"url" binding:"required"`
	Icon        *string            `json:"icon"`
	Placeholder *string            `json:"placeholder"`
	SortOrder   types.OptionalInt  `json:"sortOrder"`
	IsDefault   types.OptionalBool `json:"isDefault"`
}

type UpdateSearchEngineRequest struct {
	Name        *string              `json:"name"`
	URL         *string              `json:"url"`
	Icon        types.NullableString `json:"icon"`
	Placeholder types.NullableString `json:"placeholder"`
	SortOrder   types.OptionalInt    `json:"sortOrder"`
	IsDefault   types.OptionalBool   `json:"isDefault"`
}

type SearchEngineHandler struct {
	engines *repository.SearchEngineRepository
	logger  *zap.Logger
}

func NewSearchEngineHandler(engines *repository.SearchEngineRepository, logger *zap.Logger) *SearchEngineHandler {
	return &SearchEngineHandler{engines: engines, logger: logger}
}

func (h *SearchEngineHandler) ListSearchEngines(ctx *gin.Context) {
	engines, err := h.engines.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, engines)
}

func (h *SearchEngineHandler) CreateSearchEngine(ctx *gin.Context) {
	var body CreateSearchEngineRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	engine := models.SearchEngine{
		Name:        body.Name,
		URL:         body.URL,
		Icon:        body.Icon,
		Placeholder: body.Placeholder,
		SortOrder:   body.SortOrder.Or(0),
		IsDefault:   body.IsDefault.Value,
	}

	if err := h.engines.Create(ctx.Request.Context(), &engine); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, engine)
}

func (h *SearchEngineHandler) UpdateSearchEngine(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		invalidID(ctx)
		return
	}

	var body UpdateSearchEngineRequest

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
	if body.Icon.Set {
		updates["icon"] = body.Icon.Value
	}
	if body.Placeholder.Set {
		updates["placeholder"] = body.Placeholder.Value
	}
	if body.SortOrder.Set {
		updates["sort_order"] = body.SortOrder.Value
	}
	if body.IsDefault.Set {
		updates["is_default"] = body.IsDefault.Value
	}

	engine, err := h.engines.Update(ctx.Request.Context(), id, updates)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, engine)
}

func (h *SearchEngineHandler) DeleteSearchEngine(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		invalidID(ctx)
		return
	}

	if err := h.engines.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Engine deleted"})
}

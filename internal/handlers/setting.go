package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/internal/repository"
	"github.com/navhub-dev/navhub/internal/types"
	"go.uber.org/zap"
)

type SettingRequest struct {
	Key   string             `json:"key"`
	Value types.SettingValue `json:"value"`
}

type SettingHandler struct {
	settings *repository.SettingRepository
	logger   *zap.Logger
}

func NewSettingHandler(settings *repository.SettingRepository, logger *zap.Logger) *SettingHandler {
	return &SettingHandler{settings: settings, logger: logger}
}

func (h *SettingHandler) ListSettings(ctx *gin.Context) {
	settings, err := h.settings.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// SaveSettings accepts a single {key, value} object or an array of them.
func (h *SettingHandler) SaveSettings(ctx *gin.Context) {
	raw, err := ctx.GetRawData()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 && raw[0] == '[' {
		h.saveBatch(ctx, raw)
		return
	}

	var body SettingRequest

	if err := json.Unmarshal(raw, &body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	setting, err := h.settings.Upsert(ctx.Request.Context(), body.Key, string(body.Value))

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, setting)
}

func (h *SettingHandler) saveBatch(ctx *gin.Context, raw []byte) {
	var items []json.RawMessage

	if err := json.Unmarshal(raw, &items); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Elements that are not objects keep their index and end up skipped.
	pairs := make([]repository.SettingPair, len(items))
	for i, item := range items {
		var body SettingRequest
		if err := json.Unmarshal(item, &body); err != nil {
			continue
		}
		pairs[i] = repository.SettingPair{Key: body.Key, Value: string(body.Value)}
	}

	result, err := h.settings.UpsertMany(ctx.Request.Context(), pairs)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Settings updated",
		"updated": result.Updated,
		"skipped": result.Skipped,
	})
}

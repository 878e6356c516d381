package handlers

import (
	"blog-api/helper"
	"blog-api/middleware"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionService services.ReactionService
	Helper          *helper.HTTPHelper
}

func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService, Helper: helper.NewHTTPHelper()}
}

func (h *ReactionHandler) GetReactions(c *gin.Context) {
	blogID, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	summary, err := h.reactionService.Summary(middleware.CurrentActor(c), blogID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", summary)
}

// ToggleReaction creates, switches or removes the caller's reaction and
// answers with the updated summary.
func (h *ReactionHandler) ToggleReaction(c *gin.Context) {
	blogID, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	var req models.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	summary, err := h.reactionService.Toggle(middleware.CurrentActor(c), blogID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Reaction updated", summary)
}

func (h *ReactionHandler) DeleteReaction(c *gin.Context) {
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.reactionService.Delete(middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

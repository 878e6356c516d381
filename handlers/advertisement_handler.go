package handlers

import (
	"blog-api/helper"
	"blog-api/middleware"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type AdvertisementHandler struct {
	adService services.AdvertisementService
	Helper    *helper.HTTPHelper
}

func NewAdvertisementHandler(adService services.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{adService: adService, Helper: helper.NewHTTPHelper()}
}

// GetRunning lists the advertisements that are active right now.
func (h *AdvertisementHandler) GetRunning(c *gin.Context) {
	ads, err := h.adService.Running()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", ads)
}

func (h *AdvertisementHandler) GetAll(c *gin.Context) {
	var params models.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}
	params.Normalize(models.AdPageSize)

	ads, total, err := h.adService.List(middleware.CurrentActor(c), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendPaginated(c, "Success", ads, params, total)
}

func (h *AdvertisementHandler) CreateAdvertisement(c *gin.Context) {
	var req models.CreateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	ad, err := h.adService.Create(middleware.CurrentActor(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Advertisement created successfully", ad)
}

func (h *AdvertisementHandler) UpdateAdvertisement(c *gin.Context) {
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	ad, err := h.adService.Update(middleware.CurrentActor(c), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Advertisement updated successfully", ad)
}

func (h *AdvertisementHandler) DeleteAdvertisement(c *gin.Context) {
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.adService.Delete(middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

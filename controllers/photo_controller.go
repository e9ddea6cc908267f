package controllers

import (
	"net/http"

	"dinner-backend/services"
	"dinner-backend/utils"

	"github.com/gin-gonic/gin"
)

type PhotoController struct {
	Places services.PlacesProvider
}

func NewPhotoController(places services.PlacesProvider) *PhotoController {
	return &PhotoController{Places: places}
}

// ProxyPhoto streams a provider photo back to the browser with a 24-hour
// cache header. Upstream failures keep their status.
// GET /resources/maps/photo?photoRef=&maxWidth=&maxHeight=
func (pc *PhotoController) ProxyPhoto(c *gin.Context) {
	photoRef := c.Query("photoRef")
	if photoRef == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.missingPhotoRef", "query param 'photoRef' is required")
		return
	}

	resp, err := pc.Places.Photo(photoRef, c.Query("maxWidth"), c.Query("maxHeight"))
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "photo fetch failed: "+err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Status(resp.StatusCode)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, nil)
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flowsite/dto"
	"flowsite/media"
)

// UploadImageHandler godoc
// @Summary      Upload image
// @Description  Accepts a multipart image, normalizes it and returns the stored reference URL
// @Tags         media
// @Accept       multipart/form-data
// @Param        image     formData  file    true   "Image file (max 10 MB)"
// @Param        entry_id  formData  string  false  "Owning entry id"
// @Produce      json
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /uploads [post]
func UploadImageHandler(uploader *media.Uploader, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "no image file provided"})
			return
		}
		// size and MIME constraints live here, not in the uploader
		if file.Size > maxBytes {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "file too large (max 10MB)"})
			return
		}
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "only image uploads are allowed"})
			return
		}

		ownerID := c.DefaultPostForm("entry_id", "misc")

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable upload"})
			return
		}
		defer src.Close()

		url, err := uploader.Upload(c.Request.Context(), src, file.Filename, contentType, ownerID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
	}
}

// DeleteImageHandler godoc
// @Summary      Delete uploaded image
// @Tags         media
// @Param        ref  query  string  true  "Stored reference URL"
// @Produce      json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /uploads [delete]
func DeleteImageHandler(uploader *media.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Query("ref")
		if ref == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ref is required"})
			return
		}
		if err := uploader.Delete(c.Request.Context(), ref); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"flowsite/dto"
	"flowsite/services"
)

// CreateEntryHandler godoc
// @Summary      Create entry
// @Description  Create a content entry; title and content require at least one language
// @Tags         posts
// @Accept       json
// @Param        entry  body  dto.CreateEntryRequest  true  "Entry"
// @Produce      json
// @Success      201  {object}  dto.EntryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /posts [post]
func CreateEntryHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
			return
		}

		e, err := svc.Create(c.Request.Context(), services.CreateEntryInput{
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			Tags:          req.Tags,
			Published:     req.Published,
			FeaturedImage: req.FeaturedImage,
			Gallery:       req.Gallery,
			SEO:           req.SEO,
			Author:        req.Author,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.NewEntryDTO(*e))
	}
}

// ListEntriesHandler godoc
// @Summary      List entries
// @Description  List entries with filters and cursor pagination; the search filter applies after the page is cut and may shorten a page
// @Tags         posts
// @Param        published  query  bool      false  "Publication filter"
// @Param        tags       query  []string  false  "Tags (match-any)"
// @Param        search     query  string    false  "Free-text search over title/content/excerpt"
// @Param        limit      query  int       false  "Page size (<=100)"
// @Param        cursor     query  string    false  "Opaque cursor from the previous page"
// @Produce      json
// @Success      200  {object}  dto.EntryListResponse
// @Router       /posts [get]
func ListEntriesHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.ListEntriesInput{
			Tags:   c.QueryArray("tags"),
			Search: c.Query("search"),
			Cursor: c.Query("cursor"),
		}
		if raw, ok := c.GetQuery("published"); ok {
			published := raw == "true" || raw == "1"
			in.Published = &published
		}
		in.PageSize, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

		res, err := svc.List(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EntryListResponse{
			Data:       dto.NewEntryDTOs(res.Entries),
			NextCursor: res.NextCursor,
			HasMore:    res.HasMore,
		})
	}
}

// GetEntryHandler godoc
// @Summary      Get entry by id
// @Tags         posts
// @Param        id  path  string  true  "ObjectID hex"
// @Produce      json
// @Success      200  {object}  dto.EntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id} [get]
func GetEntryHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		if e == nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
			return
		}
		c.JSON(http.StatusOK, dto.NewEntryDTO(*e))
	}
}

// GetEntryBySlugHandler godoc
// @Summary      Get entry by slug
// @Description  Resolve a slug with language fallback; 404 only after every fallback stage misses
// @Tags         posts
// @Param        slug  path   string  true   "Slug"
// @Param        lang  query  string  false  "Language (en|he, default en)"
// @Produce      json
// @Success      200  {object}  dto.EntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/slug/{slug} [get]
func GetEntryBySlugHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"), c.DefaultQuery("lang", "en"))
		if err != nil {
			writeError(c, err)
			return
		}
		if e == nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
			return
		}
		c.JSON(http.StatusOK, dto.NewEntryDTO(*e))
	}
}

// UpdateEntryHandler godoc
// @Summary      Update entry
// @Description  Partial update; slug and read time regenerate from the merged state
// @Tags         posts
// @Accept       json
// @Param        id     path  string                  true  "ObjectID hex"
// @Param        entry  body  dto.UpdateEntryRequest  true  "Fields to update"
// @Produce      json
// @Success      200  {object}  dto.EntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id} [put]
func UpdateEntryHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
			return
		}

		e, err := svc.Update(c.Request.Context(), c.Param("id"), services.UpdateEntryInput{
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			Tags:          req.Tags,
			Published:     req.Published,
			FeaturedImage: req.FeaturedImage,
			Gallery:       req.Gallery,
			SEO:           req.SEO,
			Author:        req.Author,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewEntryDTO(*e))
	}
}

// DeleteEntryHandler godoc
// @Summary      Delete entry
// @Description  Deletes the entry after best-effort cleanup of its images
// @Tags         posts
// @Param        id  path  string  true  "ObjectID hex"
// @Produce      json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id} [delete]
func DeleteEntryHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListTagsHandler godoc
// @Summary      List distinct tags
// @Tags         posts
// @Produce      json
// @Success      200  {array}  string
// @Router       /posts/tags [get]
func ListTagsHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := svc.ListTags(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tags)
	}
}

// ListPopularHandler godoc
// @Summary      List popular entries
// @Description  Published entries by publish date descending; there is no engagement signal behind the ordering
// @Tags         posts
// @Param        limit  query  int  false  "Max entries (<=50)"
// @Produce      json
// @Success      200  {array}  dto.EntryDTO
// @Router       /posts/popular [get]
func ListPopularHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		entries, err := svc.ListPopular(c.Request.Context(), limit)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewEntryDTOs(entries))
	}
}

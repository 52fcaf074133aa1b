package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"flowsite/dto"
	"flowsite/services"
)

// SubmitContactHandler godoc
// @Summary      Submit contact form
// @Tags         contacts
// @Accept       json
// @Param        contact  body  dto.SubmitContactRequest  true  "Submission"
// @Produce      json
// @Success      201  {object}  dto.ContactDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /contacts [post]
func SubmitContactHandler(svc *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SubmitContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
			return
		}

		contact, err := svc.Submit(c.Request.Context(), services.SubmitContactInput{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.NewContactDTO(*contact))
	}
}

// ListContactsHandler godoc
// @Summary      List contact submissions
// @Tags         contacts
// @Param        status  query  string  false  "Status filter (new|contacted|closed)"
// @Param        limit   query  int     false  "Max results"
// @Produce      json
// @Success      200  {array}  dto.ContactDTO
// @Security     BearerAuth
// @Router       /contacts [get]
func ListContactsHandler(svc *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		contacts, err := svc.List(c.Request.Context(), c.Query("status"), limit)
		if err != nil {
			writeError(c, err)
			return
		}

		out := make([]dto.ContactDTO, 0, len(contacts))
		for _, contact := range contacts {
			out = append(out, dto.NewContactDTO(contact))
		}
		c.JSON(http.StatusOK, out)
	}
}

// UpdateContactStatusHandler godoc
// @Summary      Update contact status
// @Tags         contacts
// @Accept       json
// @Param        id      path  string                          true  "ObjectID hex"
// @Param        status  body  dto.UpdateContactStatusRequest  true  "New status"
// @Produce      json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /contacts/{id}/status [patch]
func UpdateContactStatusHandler(svc *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateContactStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
			return
		}

		if err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

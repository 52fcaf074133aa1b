package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowsite/auth"
	"flowsite/dto"
)

// LoginHandler godoc
// @Summary      Admin login
// @Description  Exchanges the configured admin credentials for a bearer token
// @Tags         auth
// @Accept       json
// @Param        credentials  body  dto.LoginRequest  true  "Credentials"
// @Produce      json
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func LoginHandler(jwtMgr *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
			return
		}

		if !auth.CheckAdminCredentials(req.Email, req.Password) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid credentials"})
			return
		}

		token, err := jwtMgr.Sign(req.Email, auth.RoleAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "token issuance failed"})
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Credentials payload for token issuance.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Issue a bearer token
// @Description  Validates the credentials against the configured principals
// @Description  and returns a signed token valid for 90 minutes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  authCredentials  true  "Credentials"
// @Success      200  {object}  map[string]string  "token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /authenticate [post]
func (h *Handler) authenticate(c *gin.Context) {
	var input authCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.services.Authenticate(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

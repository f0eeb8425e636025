package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IssueToken exchanges operator credentials for a bearer token.
func (h Handler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, exp, err := h.Services.Auth.Login(req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"token": token, "expiresAt": exp.UTC().Format(time.RFC3339)})
}

package auth

import (
	"net/http"
	"os"
	"strings"

	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeError(c *gin.Context, err error) {
	response.FromError(c, err)
}

// Browsers get HttpOnly cookies; the mobile app keeps tokens from the body.
func isWebClient(c *gin.Context) bool {
	return strings.EqualFold(strings.TrimSpace(c.GetHeader("X-Client-Type")), "web")
}

func setTokenCookies(c *gin.Context, access, refresh string, accessAge, refreshAge int) {
	secure := os.Getenv("APP_ENV") == "production"
	for _, ck := range []*http.Cookie{
		{Name: "access_token", Value: access, MaxAge: accessAge},
		{Name: "refresh_token", Value: refresh, MaxAge: refreshAge},
	} {
		ck.Path = "/"
		ck.HttpOnly = true
		ck.Secure = secure
		ck.SameSite = http.SameSiteLaxMode
		http.SetCookie(c.Writer, ck)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if isWebClient(c) {
		setTokenCookies(c, tokens.AccessToken, tokens.RefreshToken, int(AccessTokenTTL.Seconds()), int(RefreshTokenTTL.Seconds()))
	}
	response.Success(c, http.StatusOK, tokens, nil)
}

func (h *Handler) Me(c *gin.Context) {
	me, err := h.service.GetMe(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, me, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	setTokenCookies(c, "", "", -1, -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var refreshToken string
	if isWebClient(c) {
		cookie, err := c.Cookie("refresh_token")
		if err != nil || cookie == "" {
			writeError(c, apperror.RequiredField("refresh_token"))
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperror.MapValidationError(err))
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	if isWebClient(c) {
		setTokenCookies(c, tokens.AccessToken, tokens.RefreshToken, int(AccessTokenTTL.Seconds()), int(RefreshTokenTTL.Seconds()))
	}
	response.Success(c, http.StatusOK, tokens, nil)
}

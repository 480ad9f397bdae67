package otp

import (
	"errors"
	"net/http"

	"github.com/NazarovEvgn/lets-app/internal/logger"
	"github.com/NazarovEvgn/lets-app/internal/metrics"
	"github.com/NazarovEvgn/lets-app/internal/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
	users user.Service
}

func NewHandler(store *Store, users user.Service) *Handler {
	return &Handler{store: store, users: users}
}

type requestCodeBody struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyCodeBody struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// RequestCode godoc
// @Summary      Request a one-time login code
// @Description  Sends a six-digit code to the phone. No SMS gateway is wired
// @Description  up yet, so the code is logged and echoed for development.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      requestCodeBody  true  "Phone number"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      429      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /auth/otp/request [post]
func (h *Handler) RequestCode(c *gin.Context) {
	var req requestCodeBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.store.Issue(c.Request.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, ErrTooManyRequests) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue code"})
		return
	}

	metrics.RecordOTPIssued()

	// TODO: send via SMS gateway once one is contracted; until then the code
	// only reaches real phones through the logs.
	logger.Infof("OTP code for %s: %s", req.Phone, code)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Code sent",
		"debug_code": code,
	})
}

// VerifyCode godoc
// @Summary      Verify a one-time code and login
// @Description  Consumes the code and returns tokens, creating an account on
// @Description  first login with this phone number.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      verifyCodeBody  true  "Phone and code"
// @Success      200      {object}  user.LoginResponse
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /auth/otp/verify [post]
func (h *Handler) VerifyCode(c *gin.Context) {
	var req verifyCodeBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Verify(c.Request.Context(), req.Phone, req.Code); err != nil {
		if errors.Is(err, ErrCodeInvalid) {
			metrics.RecordOTPVerified("invalid")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
		return
	}

	u, accessToken, refreshToken, err := h.users.LoginWithPhone(c.Request.Context(), req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	metrics.RecordOTPVerified("ok")
	c.JSON(http.StatusOK, user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *u,
	})
}

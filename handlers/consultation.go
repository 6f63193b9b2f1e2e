package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"baro_landing_go/config"
	"baro_landing_go/db"
	"baro_landing_go/models"
	"baro_landing_go/services"
)

// SubmitConsultationRequest is the JSON payload of the public submission form
type SubmitConsultationRequest struct {
	Name          string `json:"name"`
	Contact       string `json:"contact"`
	PrivacyAgreed bool   `json:"privacyAgreed"`
	ClickSource   string `json:"clickSource"`
}

// SubmitConsultationResponse echoes the persisted record on success
type SubmitConsultationResponse struct {
	Success bool                  `json:"success"`
	Data    []models.Consultation `json:"data"`
}

// SubmitConsultationHandler handles POST /api/submit. It is the authoritative
// validation boundary: the client runs the same checks for UX, but nothing
// the client sends is trusted here.
func SubmitConsultationHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	// Fail fast when the store is unusable; no point validating a submission
	// we cannot persist.
	if !cfg.StoreConfigured() || db.DB == nil {
		c.Logger().Error("Data store not configured, rejecting submission")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "서버 설정 오류가 발생했습니다.",
		})
	}

	var req SubmitConsultationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "요청 형식이 올바르지 않습니다.",
		})
	}

	// Sanitize before validating: a markup-only name must not pass the
	// presence check and then empty out on the way to storage.
	req.Name = services.SanitizeInput(req.Name)
	req.ClickSource = services.SanitizeInput(req.ClickSource)

	if req.Name == "" || strings.TrimSpace(req.Contact) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "이름과 연락처를 입력해주세요.",
		})
	}

	if !req.PrivacyAgreed {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "개인정보 처리방침에 동의해주세요.",
		})
	}

	if !services.IsValidContact(req.Contact) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "올바른 연락처를 입력해주세요. (010-XXXX-XXXX)",
		})
	}

	consultation := models.Consultation{
		Name:        req.Name,
		Contact:     req.Contact,
		ClickSource: req.ClickSource,
	}
	if err := services.CreateConsultation(db.DB, &consultation); err != nil {
		c.Logger().Errorf("Failed to store consultation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "데이터 저장 중 오류가 발생했습니다.",
		})
	}

	// Notification is fire-and-forget: the response must not wait on the
	// relay, and a relay failure must not turn a captured lead into an error.
	emailSource := consultation.ClickSource
	if emailSource == models.ClickSourceUnknown {
		emailSource = ""
	}
	services.SendConsultationEmailAsync(cfg, consultation.Name, consultation.Contact, emailSource)

	return c.JSON(http.StatusCreated, SubmitConsultationResponse{
		Success: true,
		Data:    []models.Consultation{consultation},
	})
}

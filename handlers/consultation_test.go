package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"baro_landing_go/config"
	"baro_landing_go/db"
	"baro_landing_go/models"
)

func TestSubmitConsultationHandler(t *testing.T) {
	setupTestDB(t)

	doSubmit := func(cfg *config.Config, payload string) (int, map[string]interface{}) {
		_, c, rec := setupEcho(http.MethodPost, "/api/submit", strings.NewReader(payload))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if cfg != nil {
			c.Set("config", cfg)
		}

		err := SubmitConsultationHandler(c)
		assert.NoError(t, err)

		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec.Code, body
	}

	t.Run("Missing Name Returns 400", func(t *testing.T) {
		code, body := doSubmit(nil, `{"name":"","contact":"010-1234-5678","privacyAgreed":true}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "이름과 연락처를 입력해주세요.", body["error"])

		var count int64
		db.DB.Model(&models.Consultation{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Missing Contact Returns 400", func(t *testing.T) {
		code, body := doSubmit(nil, `{"name":"김철수","contact":"  ","privacyAgreed":true}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "이름과 연락처를 입력해주세요.", body["error"])
	})

	t.Run("Consent Not Given Returns 400", func(t *testing.T) {
		code, body := doSubmit(nil, `{"name":"Kim","contact":"010-1234-5678","privacyAgreed":false}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "개인정보 처리방침에 동의해주세요.", body["error"])
	})

	t.Run("Short Contact Returns 400", func(t *testing.T) {
		code, body := doSubmit(nil, `{"name":"김철수","contact":"010-123-456","privacyAgreed":true}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "올바른 연락처를 입력해주세요. (010-XXXX-XXXX)", body["error"])
	})

	t.Run("Malformed JSON Returns 400", func(t *testing.T) {
		code, body := doSubmit(nil, `{"name":`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, body["error"])
	})

	t.Run("Valid Submission Returns 201", func(t *testing.T) {
		code, body := doSubmit(nil, `{"name":"김철수","contact":"01012345678","privacyAgreed":true,"clickSource":"40~50대여성_카카오_소재_7"}`)
		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, true, body["success"])

		data, ok := body["data"].([]interface{})
		assert.True(t, ok)
		assert.Len(t, data, 1)

		record := data[0].(map[string]interface{})
		assert.Equal(t, "김철수", record["name"])
		assert.Equal(t, "010-1234-5678", record["contact"]) // stored in canonical form
		assert.Equal(t, false, record["is_completed"])
		assert.Equal(t, "40~50대여성_카카오_소재_7", record["click_source"])
		assert.NotEmpty(t, record["id"])
	})

	t.Run("Click Source Defaults To Unknown", func(t *testing.T) {
		code, body := doSubmit(nil, `{"name":"이영희","contact":"010-9876-5432","privacyAgreed":true}`)
		assert.Equal(t, http.StatusCreated, code)

		record := body["data"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, models.ClickSourceUnknown, record["click_source"])
	})

	t.Run("Unreachable Relay Does Not Affect Response", func(t *testing.T) {
		// Real send mode pointed at a relay that cannot exist; the async
		// notification fails in the background and the submission still
		// succeeds.
		cfg := testConfig()
		cfg.EmailTestMode = false
		cfg.SMTPHost = "smtp.invalid"
		cfg.SMTPPort = 1
		cfg.SMTPUser = "operator@naver.com"
		cfg.SMTPPassword = "app-password"

		code, body := doSubmit(cfg, `{"name":"박민수","contact":"010-2222-3333","privacyAgreed":true}`)
		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, true, body["success"])
	})

	t.Run("Markup-Only Name Returns 400", func(t *testing.T) {
		// Sanitation runs before the presence check, so a name that is all
		// markup cannot slip through and persist as an empty string.
		code, body := doSubmit(nil, `{"name":"<b></b>","contact":"010-1234-5678","privacyAgreed":true}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "이름과 연락처를 입력해주세요.", body["error"])

		var count int64
		db.DB.Model(&models.Consultation{}).Where("name = ?", "").Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Script-Only Name Returns 400", func(t *testing.T) {
		code, body := doSubmit(nil, `{"name":"<script>alert(1)</script>","contact":"010-1234-5678","privacyAgreed":true}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "이름과 연락처를 입력해주세요.", body["error"])
	})

	t.Run("Store Not Configured Returns 500", func(t *testing.T) {
		cfg := &config.Config{Environment: "test"}

		code, body := doSubmit(cfg, `{"name":"김철수","contact":"010-1234-5678","privacyAgreed":true}`)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "서버 설정 오류가 발생했습니다.", body["error"])
	})

	// Runs last: it tears down the shared connection to force insert failures.
	t.Run("Storage Failure Returns 500", func(t *testing.T) {
		sqlDB, err := db.DB.DB()
		assert.NoError(t, err)
		assert.NoError(t, sqlDB.Close())

		code, body := doSubmit(nil, `{"name":"김철수","contact":"010-1234-5678","privacyAgreed":true}`)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "데이터 저장 중 오류가 발생했습니다.", body["error"])
	})
}

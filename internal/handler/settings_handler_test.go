package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/montyapp/monty-backend/internal/testutil"
)

func newSettingsHandlerFixture() (*SettingsHandler, *testutil.MockSettingsRepository) {
	settingsRepo := testutil.NewMockSettingsRepository()
	return NewSettingsHandler(service.NewSettingsService(settingsRepo)), settingsRepo
}

func TestGetSettingsHandler_Success(t *testing.T) {
	e := echo.New()
	handler, settingsRepo := newSettingsHandlerFixture()
	settingsRepo.Set(domain.SettingTargetAmount, "1500000")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.GetSettings(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var settings domain.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if settings.TargetAmount != "1500000" {
		t.Errorf("Expected target amount '1500000', got %s", settings.TargetAmount)
	}
}

func TestUpdateSettingHandler_Success(t *testing.T) {
	e := echo.New()
	handler, settingsRepo := newSettingsHandlerFixture()

	body := `{"key":"target_amount","value":"1500000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.UpdateSetting(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if settingsRepo.Values[domain.SettingTargetAmount] != "1500000" {
		t.Error("Expected the setting to be stored")
	}
}

func TestUpdateSettingHandler_UnknownKey(t *testing.T) {
	e := echo.New()
	handler, _ := newSettingsHandlerFixture()

	body := `{"key":"favorite_color","value":"blue"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.UpdateSetting(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

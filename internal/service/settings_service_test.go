package service

import (
	"errors"
	"testing"

	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/testutil"
)

func TestUpdateSetting_UnknownKey(t *testing.T) {
	settingsService := NewSettingsService(testutil.NewMockSettingsRepository())

	err := settingsService.Update("favorite_color", "blue")
	if !errors.Is(err, domain.ErrInvalidSettingKey) {
		t.Errorf("Expected ErrInvalidSettingKey, got %v", err)
	}
}

func TestUpdateSetting_InvalidAmount(t *testing.T) {
	settingsService := NewSettingsService(testutil.NewMockSettingsRepository())

	if err := settingsService.Update(domain.SettingTargetAmount, "-5"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative amount, got %v", err)
	}
	if err := settingsService.Update(domain.SettingTargetAmount, "abc"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for non-numeric amount, got %v", err)
	}
}

func TestUpdateSetting_SalaryDayBounds(t *testing.T) {
	settingsService := NewSettingsService(testutil.NewMockSettingsRepository())

	if err := settingsService.Update(domain.SettingSalaryDay, "0"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for day 0, got %v", err)
	}
	if err := settingsService.Update(domain.SettingSalaryDay, "32"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for day 32, got %v", err)
	}
	if err := settingsService.Update(domain.SettingSalaryDay, "15"); err != nil {
		t.Errorf("Expected no error for day 15, got %v", err)
	}
}

func TestUpdateSetting_InvalidDate(t *testing.T) {
	settingsService := NewSettingsService(testutil.NewMockSettingsRepository())

	if err := settingsService.Update(domain.SettingTargetDate, "14-04-2024"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for malformed date, got %v", err)
	}
	if err := settingsService.Update(domain.SettingTargetDate, "2024-04-14"); err != nil {
		t.Errorf("Expected no error for ISO date, got %v", err)
	}
}

func TestUpdateSetting_EmptyValueClears(t *testing.T) {
	settingsRepo := testutil.NewMockSettingsRepository()
	settingsService := NewSettingsService(settingsRepo)

	settingsRepo.Set(domain.SettingTargetAmount, "100000")
	if err := settingsService.Update(domain.SettingTargetAmount, ""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if settingsRepo.Values[domain.SettingTargetAmount] != "" {
		t.Error("Expected the setting to be cleared")
	}
}

func TestTypedSettings_ParsesStoredValues(t *testing.T) {
	settingsRepo := testutil.NewMockSettingsRepository()
	settingsRepo.Set(domain.SettingTargetAmount, "1500000")
	settingsRepo.Set(domain.SettingTargetDate, "2024-12-31")
	settingsRepo.Set(domain.SettingSalaryDay, "10")
	settingsService := NewSettingsService(settingsRepo)

	typed, err := settingsService.Typed()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if typed.TargetAmount != 1500000 {
		t.Errorf("Expected target amount 1500000, got %d", typed.TargetAmount)
	}
	if typed.TargetDate.Year() != 2024 || typed.TargetDate.Month() != 12 {
		t.Errorf("Unexpected target date %v", typed.TargetDate)
	}
	if typed.SalaryDay != 10 {
		t.Errorf("Expected salary day 10, got %d", typed.SalaryDay)
	}
	if typed.TotalBudget != 0 {
		t.Errorf("Expected unset total budget to be 0, got %d", typed.TotalBudget)
	}
}

func TestGetAllSettings_UnsetComeBackEmpty(t *testing.T) {
	settingsService := NewSettingsService(testutil.NewMockSettingsRepository())

	settings, err := settingsService.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if settings.TargetAmount != "" || settings.TargetDate != "" {
		t.Error("Expected unset settings to be empty strings")
	}
}

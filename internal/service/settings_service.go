package service

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/util"
)

// SettingsService is the only place raw setting strings are parsed; every
// other consumer works with TypedSettings.
type SettingsService struct {
	settingsRepo domain.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo domain.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetAll returns every setting in its raw string form, empty string for
// anything unset.
func (s *SettingsService) GetAll() (*domain.Settings, error) {
	stored, err := s.settingsRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return &domain.Settings{
		TargetAmount: stored[domain.SettingTargetAmount],
		TargetDate:   stored[domain.SettingTargetDate],
		SalaryDay:    stored[domain.SettingSalaryDay],
		TotalBudget:  stored[domain.SettingTotalBudget],
	}, nil
}

// Update validates and stores one setting.
func (s *SettingsService) Update(key, value string) error {
	if !slices.Contains(domain.SettingKeys, key) {
		return domain.ErrInvalidSettingKey
	}

	value = strings.TrimSpace(value)
	if value != "" {
		switch key {
		case domain.SettingTargetAmount, domain.SettingTotalBudget:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil || n < 0 {
				return domain.ErrInvalidInput
			}
		case domain.SettingSalaryDay:
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 31 {
				return domain.ErrInvalidInput
			}
		case domain.SettingTargetDate:
			if _, err := time.ParseInLocation("2006-01-02", value, util.Almaty); err != nil {
				return domain.ErrInvalidInput
			}
		}
	}

	return s.settingsRepo.Set(key, value)
}

// Typed returns the parsed settings. Unset or unparsable values come back
// as zero values.
func (s *SettingsService) Typed() (*domain.TypedSettings, error) {
	stored, err := s.settingsRepo.GetAll()
	if err != nil {
		return nil, err
	}

	typed := &domain.TypedSettings{}
	if v := stored[domain.SettingTargetAmount]; v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			typed.TargetAmount = n
		}
	}
	if v := stored[domain.SettingTotalBudget]; v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			typed.TotalBudget = n
		}
	}
	if v := stored[domain.SettingSalaryDay]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			typed.SalaryDay = n
		}
	}
	if v := stored[domain.SettingTargetDate]; v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, util.Almaty); err == nil {
			typed.TargetDate = t
		}
	}
	return typed, nil
}

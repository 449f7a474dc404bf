package service

import (
	"testing"
	"time"

	"github.com/montyapp/monty-backend/internal/util"
)

func TestDigestScheduler_NextRunToday(t *testing.T) {
	scheduler := NewDigestScheduler(nil)

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, util.Almaty)
	next := scheduler.nextRun(now)

	want := time.Date(2024, 3, 15, digestHour, digestMinute, 0, 0, util.Almaty)
	if !next.Equal(want) {
		t.Errorf("Expected %v, got %v", want, next)
	}
}

func TestDigestScheduler_NextRunRollsToTomorrow(t *testing.T) {
	scheduler := NewDigestScheduler(nil)

	now := time.Date(2024, 3, 15, 22, 30, 0, 0, util.Almaty)
	next := scheduler.nextRun(now)

	want := time.Date(2024, 3, 16, digestHour, digestMinute, 0, 0, util.Almaty)
	if !next.Equal(want) {
		t.Errorf("Expected %v, got %v", want, next)
	}
}

func TestDigestScheduler_ExactFireTimeRollsOver(t *testing.T) {
	scheduler := NewDigestScheduler(nil)

	now := time.Date(2024, 3, 15, digestHour, digestMinute, 0, 0, util.Almaty)
	next := scheduler.nextRun(now)

	if !next.After(now) {
		t.Errorf("Expected the next run strictly after now, got %v", next)
	}
}

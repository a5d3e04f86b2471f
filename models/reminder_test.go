package models

import (
	"testing"
	"time"
)

func TestReminderValidateInterval(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name     string
		interval int64
		wantErr  bool
	}{
		{"one-shot", 0, false},
		{"daily", 86400, false},
		{"weekly", 7 * 86400, false},
		{"four weeks", 28 * 86400, false},
		{"negative", -86400, true},
		{"below a day", 3600, true},
		{"not a day multiple", 86401, true},
		{"above four weeks", 29 * 86400, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Reminder{
				Interval:  tc.interval,
				StartDate: now,
				EndDate:   now.Add(365 * 24 * time.Hour),
			}
			err := r.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected interval %d to be rejected", tc.interval)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected interval %d to be accepted, got %v", tc.interval, err)
			}
		})
	}
}

func TestReminderValidateDates(t *testing.T) {
	now := time.Now()
	r := Reminder{StartDate: now.Add(time.Hour), EndDate: now}
	if err := r.Validate(); err == nil {
		t.Fatal("expected start after end to be rejected")
	}
}

func TestAlignNextDateCatchesUp(t *testing.T) {
	now := time.Now()
	r := Reminder{
		StartDate: now.Add(-10 * 24 * time.Hour),
		EndDate:   now.Add(5 * 24 * time.Hour),
		Interval:  86400,
	}

	r.AlignNextDate(now)

	if r.NextDate.Before(now) {
		t.Fatalf("next date %v is before now %v", r.NextDate, now)
	}
	// The start is exactly 10 days back, so the next daily boundary is now itself.
	if !r.NextDate.Equal(now) {
		t.Fatalf("expected next date %v, got %v", now, r.NextDate)
	}

	// Each fire advances by exactly one interval until the end date passes.
	for i := 0; i < 5; i++ {
		if r.Expired() {
			t.Fatalf("reminder expired early at fire %d, next %v", i, r.NextDate)
		}
		r.Advance()
		want := now.Add(time.Duration(i+1) * 24 * time.Hour)
		if !r.NextDate.Equal(want) {
			t.Fatalf("fire %d: expected next date %v, got %v", i, want, r.NextDate)
		}
	}
	r.Advance()
	if !r.Expired() {
		t.Fatalf("expected reminder to expire once next %v passed end %v", r.NextDate, r.EndDate)
	}
}

func TestAlignNextDateOneShot(t *testing.T) {
	now := time.Now()
	r := Reminder{
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		Interval:  0,
	}
	r.AlignNextDate(now)
	// One-shots keep their fire instant; a past one fires immediately.
	if !r.NextDate.Equal(now.Add(-time.Hour)) {
		t.Fatalf("one-shot next date moved to %v", r.NextDate)
	}

	r.Advance()
	if !r.NextDate.Equal(now.Add(-time.Hour)) {
		t.Fatalf("advance moved a one-shot next date to %v", r.NextDate)
	}
}

func TestAlignNextDateFutureStart(t *testing.T) {
	now := time.Now()
	start := now.Add(48 * time.Hour)
	r := Reminder{
		StartDate: start,
		EndDate:   start.Add(30 * 24 * time.Hour),
		Interval:  86400,
	}
	r.AlignNextDate(now)
	if !r.NextDate.Equal(start) {
		t.Fatalf("expected future start to stay at %v, got %v", start, r.NextDate)
	}
}

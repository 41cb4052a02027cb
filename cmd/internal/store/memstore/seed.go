package memstore

import (
	"time"

	"famcal/cmd/internal/domain/entity"
)

// Seeded returns a store preloaded with the demo family, so the app is
// usable out of the box when no remote configuration is present. Dates
// are relative to today to keep the demo calendar alive.
func Seeded() *Store {
	s := New()
	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
	}

	s.members = []entity.Member{
		{ID: "m1", Name: "パパ", Color: "#3B82F6"},
		{ID: "m2", Name: "ママ", Color: "#EC4899"},
		{ID: "m3", Name: "太郎", Color: "#10B981"},
		{ID: "m4", Name: "花子", Color: "#F59E0B"},
	}
	s.events = []entity.Event{
		{
			ID: "e1", Title: "家族ミーティング", Description: "月初の家族会議",
			Date: day(0), StartTime: "19:00", EndTime: "20:00",
			MemberID: "m1", Reminder: true, ReminderMinutes: 30,
		},
		{
			ID: "e2", Title: "サッカー練習", Description: "学校のグラウンドで",
			Date: day(1), StartTime: "16:00", EndTime: "18:00",
			MemberID: "m3", Reminder: true, ReminderMinutes: 60,
		},
		{
			ID: "e3", Title: "ピアノレッスン", Description: "山田先生のお宅",
			Date: day(2), StartTime: "15:00", EndTime: "16:00",
			MemberID: "m4", Reminder: true, ReminderMinutes: 30,
		},
		{
			ID: "e4", Title: "買い物", Description: "週末の食材",
			Date: day(3), StartTime: "10:00", EndTime: "12:00",
			MemberID: "m2", Reminder: false, ReminderMinutes: 0,
		},
	}
	return s
}

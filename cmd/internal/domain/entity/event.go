package entity

type Event struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:1000" json:"description"`
	Date        string `gorm:"not null;index" json:"date"` // YYYY-MM-DD, no time zone
	StartTime   string `gorm:"not null" json:"startTime"`  // HH:MM local clock time
	EndTime     string `gorm:"not null" json:"endTime"`
	MemberID    string `gorm:"not null;index" json:"memberId"` // References: members(id)

	// ReminderMinutes is meaningful only while Reminder is true; the editing
	// UI zeroes it otherwise, the store does not.
	Reminder        bool `gorm:"not null" json:"reminder"`
	ReminderMinutes int  `gorm:"not null" json:"reminderMinutes"`
}

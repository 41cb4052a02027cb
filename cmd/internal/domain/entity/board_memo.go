package entity

// BoardMemo is a note on the shared family board. Timestamps are RFC3339
// strings stamped by the store: CreatedAt once, UpdatedAt on every edit.
type BoardMemo struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Content   string `gorm:"size:1000;not null" json:"content"`
	MemberID  string `gorm:"not null;index" json:"memberId"` // References: members(id)
	CreatedAt string `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt string `gorm:"not null;index;autoUpdateTime:false" json:"updatedAt"`
}

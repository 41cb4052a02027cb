package entity

// Member is a family member profile. Color is free-form; the UI offers a
// palette but the store accepts any value.
type Member struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Color string `gorm:"not null" json:"color"`
}

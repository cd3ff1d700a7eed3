package models

// ScheduleEntry represents a staff schedule slot (e.g. "Monday",
// "09:00-17:00", "Clinic Duty").
type ScheduleEntry struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	UserName string `gorm:"size:255" json:"userName"`
	Day      string `gorm:"size:20" json:"day"`
	Time     string `gorm:"size:30" json:"time"`
	Activity string `gorm:"size:255" json:"activity"`
}

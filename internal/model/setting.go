package model

import "time"

// Setting keys stored in app_settings.
const (
	SettingExamSchedule = "exam_schedule"
)

// AppSetting is one key/value configuration row.
type AppSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

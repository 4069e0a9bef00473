package models

import "time"

type HRVReading struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:uidx_hrv_user_date" json:"-"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uidx_hrv_user_date" json:"date"`
	MeasuredAt time.Time `gorm:"not null" json:"measured_at"`
	RMSSDMs    float64   `gorm:"column:rmssd_ms;not null" json:"rmssd_ms"`
	SDNNMs     float64   `gorm:"column:sdnn_ms;not null" json:"sdnn_ms"`
	RestingHR  float64   `gorm:"not null" json:"resting_hr"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (HRVReading) TableName() string {
	return "hrv_readings"
}

package entity

import "time"

type Bakery struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Pincode   string    `json:"pincode" gorm:"type:varchar(6);not null;index:pincode_idx"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Bakery) TableName() string {
	return "bakeries"
}

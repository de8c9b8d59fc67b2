package models

// Food is reference nutrition data per unit of measure (e.g. per gram).
type Food struct {
	Base
	Name     string  `json:"name" gorm:"not null;uniqueIndex"`
	Unit     string  `json:"unit" gorm:"not null"`
	Calories float64 `json:"calories" gorm:"not null"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
}

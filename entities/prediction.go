package entities

import "time"

// PredictionRecord is one served prediction with the inputs that produced it.
type PredictionRecord struct {
	PredictionID        uint      `gorm:"primaryKey" json:"prediction_id"`
	N                   float64   `json:"N"`
	P                   float64   `json:"P"`
	K                   float64   `json:"K"`
	Temperature         float64   `json:"temperature"`
	Humidity            float64   `json:"humidity"`
	PH                  float64   `json:"ph"`
	Rainfall            float64   `json:"rainfall"`
	PreviousCrop        string    `json:"previous_crop" gorm:"index"`
	PreviousCropEncoded int       `json:"previous_crop_encoded"`
	PredictedCrop       string    `json:"predicted_crop" gorm:"index"`
	CropEncoded         int       `json:"crop_encoded"`
	PredictedYield      float64   `json:"predicted_yield"`
	CreatedAt           time.Time `json:"created_at" gorm:"index"`
}

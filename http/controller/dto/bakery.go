package dto

type BakeryRequestDTO struct {
	Name    string `json:"name"`
	Pincode string `json:"pincode"`
}

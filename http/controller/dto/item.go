package dto

// ItemFormDTO holds the text parts of an item multipart form. The image part
// is read separately.
type ItemFormDTO struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Price       string `form:"price"`
}

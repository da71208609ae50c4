package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// Upload is one received file part.
type Upload struct {
	Filename string
	Data     []byte
}

// ItemInput carries the raw multipart fields of an item request.
type ItemInput struct {
	Name        string
	Description string
	Price       string
	Image       *Upload
}

// ItemFields is the typed result of a successful item validation.
// Image is nil when no replacement image was submitted.
type ItemFields struct {
	Name        string  `json:"name" validate:"required,min=4,max=100"`
	Description string  `json:"description" validate:"required,min=8"`
	Price       int64   `json:"price" validate:"gt=0"`
	Image       *Upload `json:"-"`
	ContentType string  `json:"-"`
}

type BakeryInput struct {
	Name    string `json:"name" validate:"required,min=4,max=100"`
	Pincode string `json:"pincode" validate:"required,len=6,number"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateItem checks an item payload. On create the image is mandatory; on
// update an absent image means "keep the current one". Every violation is
// reported in a single *ValidationError.
func ValidateItem(in ItemInput, requireImage bool) (*ItemFields, error) {
	violations := map[string]string{}

	fields := &ItemFields{
		Name:        in.Name,
		Description: in.Description,
	}

	price, err := strconv.ParseInt(strings.TrimSpace(in.Price), 10, 64)
	if err != nil {
		violations["price"] = "must be an integer amount in cents"
	} else {
		fields.Price = price
	}

	collect(validate.Struct(fields), violations)
	// the struct rule for price is meaningless once parsing failed
	if err != nil {
		violations["price"] = "must be an integer amount in cents"
	}

	switch {
	case in.Image == nil || len(in.Image.Data) == 0:
		if requireImage {
			violations["image"] = "is required"
		}
	default:
		mtype := mimetype.Detect(in.Image.Data)
		if !strings.HasPrefix(mtype.String(), "image/") {
			violations["image"] = "must be an image"
			break
		}
		fields.Image = in.Image
		fields.ContentType = mtype.String()
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Fields: violations}
	}
	return fields, nil
}

// ValidateBakery checks a bakery payload.
func ValidateBakery(in BakeryInput) (*BakeryInput, error) {
	violations := map[string]string{}
	collect(validate.Struct(in), violations)
	if len(violations) > 0 {
		return nil, &ValidationError{Fields: violations}
	}
	return &in, nil
}

func collect(err error, violations map[string]string) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		violations["_"] = err.Error()
		return
	}
	for _, fe := range verrs {
		if _, seen := violations[fe.Field()]; seen {
			continue
		}
		violations[fe.Field()] = describe(fe)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "number":
		return "must contain only digits"
	default:
		return "is invalid"
	}
}

package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tnqbao/gau-bakery-service/http/controller/dto"
	"github.com/tnqbao/gau-bakery-service/service"
	"github.com/tnqbao/gau-bakery-service/utils"
)

const multipartMemory = 8 << 20

var errUploadTooLarge = errors.New("upload too large")

// readItemForm parses the multipart body into an ItemInput. It writes the
// error response itself and returns false when the request cannot proceed.
func (ctrl *Controller) readItemForm(c *gin.Context) (service.ItemInput, bool) {
	ctx := c.Request.Context()
	limit := ctrl.Config.EnvConfig.Asset.MaxUploadSize

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Item] Upload exceeds %d bytes", limit)
			utils.JSON413(c, "Upload too large")
			return service.ItemInput{}, false
		}
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Item] Failed to parse multipart form: %v", err)
		utils.JSON400(c, "Invalid form data")
		return service.ItemInput{}, false
	}

	var form dto.ItemFormDTO
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Item] Failed to bind form: %v", err)
		utils.JSON400(c, "Invalid form data")
		return service.ItemInput{}, false
	}

	input := service.ItemInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
	}

	if files := c.Request.MultipartForm.File["image"]; len(files) > 0 {
		upload, err := readUpload(files[0], limit)
		if errors.Is(err, errUploadTooLarge) {
			utils.JSON413(c, "Upload too large")
			return service.ItemInput{}, false
		}
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Failed to read uploaded image")
			utils.JSON400(c, "Failed to read image")
			return service.ItemInput{}, false
		}
		input.Image = upload
	}

	return input, true
}

func readUpload(header *multipart.FileHeader, limit int64) (*service.Upload, error) {
	if header.Size > limit {
		return nil, errUploadTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}

	return &service.Upload{Filename: header.Filename, Data: data}, nil
}

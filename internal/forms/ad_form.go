package forms

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rajivgeraev/ads-service/internal/models"
)

// AdForm данные формы создания и редактирования объявления
type AdForm struct {
	Title string `form:"title" json:"title" validate:"required,min=2,max=200"`
	Price string `form:"price" json:"price" validate:"omitempty,price"`
	Text  string `form:"text" json:"text" validate:"required"`

	// Picture загруженный файл; nil, если файл не передан
	Picture *multipart.FileHeader `form:"-" json:"-" validate:"-"`
}

// AdFormFromModel заполняет форму текущими значениями объявления
func AdFormFromModel(ad *models.Ad) AdForm {
	form := AdForm{Title: ad.Title, Text: ad.Text}
	if ad.Price != nil {
		form.Price = *ad.Price
	}
	return form
}

// Validate очищает значения и проверяет форму.
// maxPictureBytes ограничивает размер картинки.
func (f *AdForm) Validate(maxPictureBytes int64) Errors {
	f.Title = strings.TrimSpace(f.Title)
	f.Price = strings.TrimSpace(f.Price)
	f.Text = strings.TrimSpace(f.Text)

	errs := validateStruct(f)
	if f.Picture != nil && f.Picture.Size > maxPictureBytes {
		if errs == nil {
			errs = Errors{}
		}
		errs["picture"] = fmt.Sprintf("Размер файла должен быть не больше %s", formatBytes(maxPictureBytes))
	}
	return errs
}

// Apply переносит значения проверенной формы в объявление.
// Возвращает true, если картинка была заменена; без файла картинка не меняется.
func (f *AdForm) Apply(ad *models.Ad) (bool, error) {
	ad.Title = f.Title
	ad.Text = f.Text
	ad.Price = nil
	if f.Price != "" {
		price, ok := NormalizePrice(f.Price)
		if !ok {
			return false, Errors{"price": priceMessage}
		}
		ad.Price = &price
	}

	if f.Picture == nil {
		return false, nil
	}

	data, err := readFile(f.Picture)
	if err != nil {
		return false, fmt.Errorf("ошибка чтения картинки: %w", err)
	}

	contentType := f.Picture.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	ad.Picture = data
	ad.ContentType = contentType
	return true, nil
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return fmt.Sprintf("%d МБ", n/mb)
	}
	return fmt.Sprintf("%d байт", n)
}

package forms

import "strings"

// CommentForm форма комментария к объявлению
type CommentForm struct {
	Comment string `form:"comment" json:"comment" validate:"required,min=3"`
}

// Validate очищает текст и проверяет минимальную длину
func (f *CommentForm) Validate() Errors {
	f.Comment = strings.TrimSpace(f.Comment)
	return validateStruct(f)
}

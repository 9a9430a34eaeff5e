// Package forms проверяет и приводит к нужному виду данные форм объявлений и комментариев.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках используем имена полей формы, а не Go-структуры
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, ok := NormalizePrice(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}

	return v
}

// Errors ошибки формы по полям: имя поля -> сообщение
type Errors map[string]string

// Error реализует интерфейс error
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "ошибка валидации формы: " + strings.Join(parts, "; ")
}

const priceMessage = "Введите число: не более 7 цифр, из них не более 2 после точки"

// messages переопределяет стандартные сообщения для конкретных полей
var messages = map[string]string{
	"title.min":   "Заголовок должен быть не короче 2 символов",
	"comment.min": "Комментарий должен быть не короче 3 символов",
}

// validateStruct проверяет форму и собирает ошибки по полям
func validateStruct(form any) Errors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Errors{"__all__": err.Error()}
	}

	result := make(Errors, len(validationErrors))
	for _, fe := range validationErrors {
		if _, exists := result[fe.Field()]; exists {
			continue
		}
		result[fe.Field()] = translate(fe)
	}
	return result
}

func translate(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "Обязательное поле"
	case "min":
		return fmt.Sprintf("Должно быть не короче %s символов", fe.Param())
	case "max":
		return fmt.Sprintf("Должно быть не длиннее %s символов", fe.Param())
	case "price":
		return priceMessage
	default:
		return "Неверное значение"
	}
}

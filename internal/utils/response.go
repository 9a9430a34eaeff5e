package utils

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Общие тексты ошибок API
const (
	MsgNotFound = "Не найдено"
	MsgInternal = "Внутренняя ошибка сервера"
)

// ParamUUID разбирает UUID из параметра пути.
// Некорректный ID не может совпасть ни с одной записью, поэтому вызывающий отвечает 404.
func ParamUUID(c fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// NotFound отвечает 404 без подробностей о причине
func NotFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": MsgNotFound})
}

// InternalError пишет ошибку в лог и отвечает 500
func InternalError(c fiber.Ctx, err error, msg string) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg(msg)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": MsgInternal})
}

// RedirectTo отвечает 302 на указанный путь
func RedirectTo(c fiber.Ctx, path string) error {
	return c.Redirect().Status(fiber.StatusFound).To(path)
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Recovery перехватывает панику в обработчике и пишет стек в лог.
// Ответ 500 формирует ErrorHandler сервера.
func Recovery(logger *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error("Panic recovered",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("panic", e),
				zap.Stack("stack"),
			)
		},
	})
}

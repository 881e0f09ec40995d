package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Service is the interface for an API handler service.
type Service interface {
	Init(router fiber.Router) error
}

// Package response renders the JSON envelope shared by every API endpoint.
package response

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Default messages.
const (
	MessageSuccess = "Success"
	MessageCreated = "Created successfully"
)

// Success is the envelope of a successful call.
type Success struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Failure is the envelope of a failed call. Error holds the machine readable code.
type Failure struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// Pagination describes one page of a list.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// Page is the data of a paginated list.
type Page[T any] struct {
	List       []T        `json:"list"`
	Pagination Pagination `json:"pagination"`
}

// Now is the clock of the envelope timestamp.
var Now = time.Now

func timestamp() string {
	return Now().UTC().Format(time.RFC3339Nano)
}

// OK writes data with status 200.
func OK(c *fiber.Ctx, data any) error {
	return Write(c, fiber.StatusOK, MessageSuccess, data)
}

// Created writes data with status 201.
func Created(c *fiber.Ctx, data any) error {
	return Write(c, fiber.StatusCreated, MessageCreated, data)
}

// Write writes a success envelope.
func Write(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Success{
		Success:   true,
		Code:      status,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Paginated writes one page of list.
func Paginated[T any](c *fiber.Ctx, list []T, total int64, page, pageSize int) error {
	if list == nil {
		list = []T{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return OK(c, Page[T]{
		List: list,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	})
}

// Fail writes an error envelope.
func Fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Failure{
		Success:   false,
		Code:      status,
		Message:   message,
		Error:     code,
		Timestamp: timestamp(),
	})
}

package presenter

import "github.com/gofiber/fiber/v2"

// Machine-readable error codes returned alongside HTTP statuses. Clients
// branch on the code, never on the message text.
const (
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeForbidden          = "FORBIDDEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeServerError        = "SERVER_ERROR"
)

// SuccessResponse is the uniform envelope for 2xx replies.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse is the uniform envelope for failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func Success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(SuccessResponse{Success: true, Message: message, Data: data})
}

func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Message: message, Error: code})
}

package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parsePageLimit reads 1-based page/limit query params; out-of-range values
// fall back to defaults and the use case caps the page size.
func parsePageLimit(c *fiber.Ctx) (page, limit int) {
	page = 1
	limit = 10
	if v := strings.TrimSpace(c.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}

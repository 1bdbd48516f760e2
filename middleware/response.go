package middleware

import (
	"eduplatform/utils"

	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes the standard success envelope.
func JsonResponse(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(statusCode).JSON(body)
}

// Page is the data body of every paginated list.
type Page struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

func PaginatedResponse(c *fiber.Ctx, items interface{}, total int64, page, limit int) error {
	return JsonResponse(c, fiber.StatusOK, "", Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(total, limit),
	})
}

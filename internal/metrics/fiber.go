package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Middleware records request counters and crawler visits.
// Chain errors are rendered here so the recorded status matches the response.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if bot, ok := DetectBot(c.Get(fiber.HeaderUserAgent)); ok {
			m.crawlerVisit(bot)
		}

		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		endpoint := c.Route().Path
		if endpoint == "" || endpoint == "/" {
			endpoint = c.Path()
		}
		m.observeRequest(endpoint, c.Method(), strconv.Itoa(c.Response().StatusCode()), time.Since(start).Seconds())
		return nil
	}
}

// Package flash keeps short-lived user messages on the request instead of
// in process-wide state.
package flash

import (
	"github.com/gofiber/fiber/v2"
)

const localsKey = "flash"

type Category string

const (
	Success Category = "success"
	Info    Category = "info"
	Warning Category = "warning"
	Danger  Category = "danger"
)

type Message struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Queue collects messages produced while handling one request.
type Queue struct {
	messages []Message
}

func (q *Queue) Add(category Category, text string) {
	q.messages = append(q.messages, Message{Category: category, Text: text})
}

// Drain returns the queued messages and empties the queue.
func (q *Queue) Drain() []Message {
	out := q.messages
	q.messages = nil
	if out == nil {
		return []Message{}
	}
	return out
}

// Middleware attaches a fresh queue to every request.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localsKey, &Queue{})
		return c.Next()
	}
}

// From returns the request's queue, creating one when the middleware is absent.
func From(c *fiber.Ctx) *Queue {
	if q, ok := c.Locals(localsKey).(*Queue); ok {
		return q
	}
	q := &Queue{}
	c.Locals(localsKey, q)
	return q
}

func Add(c *fiber.Ctx, category Category, text string) {
	From(c).Add(category, text)
}

func Drain(c *fiber.Ctx) []Message {
	return From(c).Drain()
}

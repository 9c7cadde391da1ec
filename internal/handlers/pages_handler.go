package handlers

import (
	"html"

	"github.com/gofiber/fiber/v2"
)

// PagesHandler serves the static informational pages.
type PagesHandler struct {
	siteName string
}

func NewPagesHandler(siteName string) *PagesHandler {
	return &PagesHandler{siteName: siteName}
}

const pageStyle = `body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}nav a{margin-right:12px}`

func (h *PagesHandler) render(c *fiber.Ctx, title, body string) error {
	name := html.EscapeString(h.siteName)
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>` + title + ` - ` + name + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>` + pageStyle + `</style>
</head><body>
<nav><a href="/">Home</a><a href="/courses">Courses</a><a href="/how_it_works">How it works</a><a href="/contact">Contact</a><a href="/login">Login</a></nav>
` + body + `
</body></html>`)
}

func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return h.render(c, "Home", `<h1>Find a home tutor in Karachi</h1>
<p>Tell us your area, board and subjects to get an instant fee quote. Verified tutors will pick up your request once our team has reviewed it.</p>
<h2>Tutors</h2>
<p>Sign up as a tutor to browse verified tuition requests in your area.</p>`)
}

func (h *PagesHandler) Courses(c *fiber.Ctx) error {
	return h.render(c, "Courses", `<h1>Courses</h1>
<h2>Boards</h2>
<p>Cambridge O'Levels, Cambridge A'Levels, ACCA, ICAP, Matric and Intermediate.</p>
<h2>Subjects</h2>
<p>Mathematics, Physics, Chemistry, Biology, Audit, English, Urdu, Computer Science, Accounting, Economics and more.</p>`)
}

func (h *PagesHandler) HowItWorks(c *fiber.Ctx) error {
	return h.render(c, "How it works", `<h1>How it works</h1>
<ol>
<li>Submit a tuition request and confirm it with the OTP sent to your email.</li>
<li>Our team verifies the request and publishes it to tutors.</li>
<li>A tutor accepts the request and we confirm the match.</li>
<li>You are contacted by your tutor to start classes.</li>
</ol>`)
}

func (h *PagesHandler) Contact(c *fiber.Ctx) error {
	return h.render(c, "Contact", `<h1>Contact</h1>
<p>Questions about a request or a tutor? Email support@tutex.pk and we will get back to you within one working day.</p>`)
}

func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return h.render(c, "Login", `<h1>Login</h1>
<form method="post" action="/login">
<p><input name="username" placeholder="Username" required></p>
<p><input name="password" type="password" placeholder="Password" required></p>
<p><select name="user_type"><option value="student">Student</option><option value="tutor">Tutor</option><option value="admin">Admin</option></select></p>
<p><button type="submit">Login</button></p>
</form>`)
}

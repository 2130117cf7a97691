package handlers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/service"
)

const loginPageTemplate = `<!DOCTYPE html>
<html>
<head><title>Project Tracker - Login</title></head>
<body>
<h1>Project Tracker</h1>
%s<form method="post" action="/login">
  <label>Username <input type="text" name="username"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Log in</button>
</form>
</body>
</html>`

const indexPageTemplate = `<!DOCTYPE html>
<html>
<head><title>Project Tracker</title></head>
<body>
<h1>Projects</h1>
<p>Signed in as <strong>%s</strong>. <form method="post" action="/logout" style="display:inline"><button type="submit">Log out</button></form></p>
<ul>
%s</ul>
<h2>Live updates</h2>
<ul id="feed"></ul>
<script>
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/dashboard");
  ws.onmessage = (ev) => {
    const li = document.createElement("li");
    li.textContent = ev.data;
    document.getElementById("feed").prepend(li);
  };
</script>
</body>
</html>`

// WebHandler serves the browser-facing pages: login form, dashboard, logout.
// Authentication itself is the gateway's job; by the time Index runs, a
// principal is already attached.
type WebHandler struct {
	sessions auth.SessionStore
	projects *service.ProjectService
}

// NewWebHandler constructs the handler.
func NewWebHandler(sessions auth.SessionStore, projects *service.ProjectService) *WebHandler {
	return &WebHandler{sessions: sessions, projects: projects}
}

// LoginPage handles GET /login.
func (h *WebHandler) LoginPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(loginPageTemplate, ""))
}

// RenderLoginFailed implements auth.LoginRenderer: the login page again, with
// a generic message that does not say what was wrong with the credential.
func (h *WebHandler) RenderLoginFailed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Status(http.StatusUnauthorized)
	return c.SendString(fmt.Sprintf(loginPageTemplate, "<p><strong>Login failed.</strong></p>\n"))
}

// LoginSubmit handles POST /login after the gateway has validated the
// credentials and established the session; the only work left is navigation.
func (h *WebHandler) LoginSubmit(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles POST /logout: destroy the session and return to login.
func (h *WebHandler) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies(auth.SessionCookieName); sessionID != "" {
		_ = h.sessions.Delete(c.UserContext(), sessionID)
	}
	c.ClearCookie(auth.SessionCookieName)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// Index handles GET /: the protected dashboard page.
func (h *WebHandler) Index(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	projects, err := h.projects.List(c.UserContext(), "")
	if err != nil {
		return err
	}

	items := ""
	for _, p := range projects {
		items += fmt.Sprintf("<li>%s (%s)</li>\n", html.EscapeString(p.Name), html.EscapeString(string(p.Status)))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(indexPageTemplate, html.EscapeString(principal.Name), items))
}

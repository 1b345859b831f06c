package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-stockbill/internal/service"
	"go-stockbill/pkg/token"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles mock authentication.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	user, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid username or password"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Login failed"})
	}

	t, err := token.Generate(user.ID, user.Username, user.Email, string(user.Role))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{"token": t, "user": user})
}

// Logout clears the persisted session.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Logout failed"})
	}
	return c.JSON(fiber.Map{"message": "Signed out"})
}

// Session returns the restored identity, if any.
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	user := h.authService.Current()
	if user == nil {
		restored, err := h.authService.Restore()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to read session"})
		}
		user = restored
	}
	if user == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Not signed in"})
	}
	return c.JSON(fiber.Map{"user": user})
}

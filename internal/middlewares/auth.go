package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	LocalUsuarioID = "usuario_id"
	LocalAreaID    = "area_id"
	LocalRol       = "rol"
)

// RequireAuth parses the bearer token and stashes the identity claims in
// c.Locals. Token issuance and session handling live in the auth service;
// this only decodes what it receives.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "token requerido")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "token inválido")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token inválido")
		}

		usuarioID, err := claimUUID(claims, "usuario_id")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "usuario_id inválido en el token")
		}
		areaID, err := claimUUID(claims, "area_id")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "area_id inválido en el token")
		}

		rol, _ := claims["rol"].(string)

		c.Locals(LocalUsuarioID, usuarioID)
		c.Locals(LocalAreaID, areaID)
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

// RequireRol gates a route to the given roles. Must run after RequireAuth.
func RequireRol(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, _ := c.Locals(LocalRol).(string)
		for _, r := range roles {
			if rol == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "permisos insuficientes",
		})
	}
}

// UsuarioID reads the authenticated user id set by RequireAuth.
func UsuarioID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalUsuarioID).(uuid.UUID)
	return id, ok
}

// AreaID reads the authenticated user's area id set by RequireAuth.
func AreaID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalAreaID).(uuid.UUID)
	return id, ok
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), nil
	}
	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie, nil
	}
	return "", fiber.ErrUnauthorized
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, _ := claims[key].(string)
	return uuid.Parse(raw)
}

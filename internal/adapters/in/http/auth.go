package http

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Credentials maps API user names to their Basic auth passwords. User names
// are matched case-insensitively.
type Credentials map[string]string

// NewBasicAuth checks the user and password of every request that sends an
// Authorization header and answers 401 on a mismatch. Requests without the
// header pass through and act as anonymous.
func NewBasicAuth(users Credentials) echo.MiddlewareFunc {
	known := make(map[string][]byte, len(users))
	for user, password := range users {
		known[strings.ToLower(strings.TrimSpace(user))] = []byte(password)
	}

	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
		Validator: func(user, password string, _ echo.Context) (bool, error) {
			expected, ok := known[strings.ToLower(strings.TrimSpace(user))]
			return ok && subtle.ConstantTimeCompare([]byte(password), expected) == 1, nil
		},
		Realm: "lots",
	})
}

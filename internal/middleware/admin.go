package middleware

import (
    "crypto/subtle"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/utils"
)

// AdminRealm is sent in the WWW-Authenticate challenge.
const AdminRealm = "Fyyur admin"

// RequireAdmin guards mutating routes with HTTP basic auth. The password
// is checked against a bcrypt hash. With no credentials configured the
// routes stay open.
func RequireAdmin(cfg config.AdminConfig) echo.MiddlewareFunc {
    if !cfg.Enabled() {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return echomw.BasicAuthWithConfig(echomw.BasicAuthConfig{
        Realm: AdminRealm,
        Validator: func(user, pass string, c echo.Context) (bool, error) {
            userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.User)) == 1
            // always run bcrypt so a wrong user name costs the same
            passOK := utils.VerifyPassword(cfg.PasswordHash, pass)
            return userOK && passOK, nil
        },
    })
}

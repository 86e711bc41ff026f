package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: person_id must be
// non-empty (presence proves the middleware ran).
func ctxIdentity(c echo.Context) (personID string, admin bool, err error) {
	personID, _ = c.Get("person_id").(string)
	if personID == "" {
		return "", false, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	admin, _ = c.Get("admin").(bool)
	return personID, admin, nil
}

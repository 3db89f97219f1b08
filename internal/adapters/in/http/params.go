package http

import (
	"fmt"
	"net/http"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func bindPathString(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func orderIDParam(c echo.Context) (order.ID, error) {
	raw, err := bindPathString(c, "id")
	if err != nil {
		return "", err
	}
	return order.ParseID(raw)
}

func riderIDParam(c echo.Context) (kernel.UUID, error) {
	raw, err := bindPathString(c, "id")
	if err != nil {
		return kernel.UUID{}, err
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

// optionalIntQuery binds an optional integer query parameter; absent yields 0.
func optionalIntQuery(c echo.Context, name string) (int, error) {
	var value *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	if value == nil {
		return 0, nil
	}
	return *value, nil
}

package http

import "github.com/labstack/echo/v4"

func errJSON(message string) echo.Map {
	return echo.Map{"error": message}
}

func listJSON(items any) echo.Map {
	return echo.Map{"items": items}
}

package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

func (a *App) parsePagination(c echo.Context) (bool, int, int) {
	page := queryUint(c, "page")
	limit := queryUint(c, "limit")

	if page != nil && *page == 0 && limit != nil && *limit == 0 {
		// special case: show everything
		return true, -1, -1
	}

	// before mapping: which page, how many per page
	// after mapping: page minus one, limit unchanged
	var parsedPage, parsedLimit uint

	if page == nil || *page < 1 {
		parsedPage = 0
	} else {
		parsedPage = *page - 1
	}

	if limit == nil || *limit <= 0 {
		parsedLimit = 100
	} else {
		parsedLimit = *limit
	}

	return false, int(parsedPage), int(parsedLimit)
}

func (a *App) calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	}

	pageMax := count / int64(limit)
	if (count % int64(limit)) != 0 {
		pageMax++
	}
	return pageMax
}

func queryUint(c echo.Context, name string) *uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}

	u := uint(v)
	return &u
}

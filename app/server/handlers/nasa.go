package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"nasa-mission-control/app/server/constants"
)

// Rovers with photo archives on the upstream API.
var marsRovers = []string{"curiosity", "opportunity", "spirit", "perseverance"}

func (a *App) NasaApod(c echo.Context) error {
	rctx := c.Request().Context()

	query := url.Values{}
	date := c.QueryParam("date")
	if date != "" {
		query.Set("date", date)
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyNasaApod, date)
	if cached, err := a.rdb.Get(rctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query cache for apod", zap.Error(err))
		}
	} else {
		return c.JSONBlob(http.StatusOK, cached)
	}

	body, err := a.nasaGet(c, "/planetary/apod", query)
	if err != nil {
		a.l.Error("failed to fetch apod", zap.Error(err))
		return a.erm(c, http.StatusBadGateway, "failed to fetch APOD")
	}

	a.rdb.Set(rctx, cacheKey, body, constants.CacheExpireNasaApod)

	return c.JSONBlob(http.StatusOK, body)
}

func (a *App) NasaMarsPhotos(c echo.Context) error {
	rctx := c.Request().Context()

	rover := c.QueryParam("rover")
	if rover == "" {
		rover = "curiosity"
	}
	if !slices.Contains(marsRovers, rover) {
		return a.erm(c, http.StatusBadRequest, "unknown rover")
	}

	query := url.Values{}
	day := c.QueryParam("sol")
	if day != "" {
		query.Set("sol", day)
	} else if day = c.QueryParam("earth_date"); day != "" {
		query.Set("earth_date", day)
	} else {
		day = "1000"
		query.Set("sol", day) // upstream requires a day selector
	}
	page := c.QueryParam("page")
	if page != "" {
		query.Set("page", page)
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyNasaMarsPhotos, rover, day, page)
	if cached, err := a.rdb.Get(rctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query cache for mars photos", zap.Error(err))
		}
	} else {
		return c.JSONBlob(http.StatusOK, cached)
	}

	body, err := a.nasaGet(c, "/mars-photos/api/v1/rovers/"+rover+"/photos", query)
	if err != nil {
		a.l.Error("failed to fetch mars photos", zap.String("rover", rover), zap.Error(err))
		return a.erm(c, http.StatusBadGateway, "failed to fetch Mars photos")
	}

	a.rdb.Set(rctx, cacheKey, body, constants.CacheExpireNasaMarsPhotos)

	return c.JSONBlob(http.StatusOK, body)
}

// nasaGet performs an upstream GET and returns the raw JSON body. The upstream
// is opaque: anything other than a 200 is treated as a failure, nothing is
// retried.
func (a *App) nasaGet(c echo.Context, path string, query url.Values) ([]byte, error) {
	query.Set("api_key", a.nasaKey)

	reqURL, err := url.JoinPath(a.nasaEndpoint, path)
	if err != nil {
		return nil, fmt.Errorf("join upstream url: %w", err)
	}
	reqURL += "?" + query.Encode()

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("prepare upstream request: %w", err)
	}

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send upstream request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream responded with status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	return body, nil
}

package constants

import "time"

const (
	CacheKeyNasaApod       = "nasa:apod:%s"       // %s -> date (empty for today)
	CacheKeyNasaMarsPhotos = "nasa:mars:%s:%s:%s" // rover, sol or earth_date, page
)

const (
	CacheExpireNasaApod       = 1 * time.Hour
	CacheExpireNasaMarsPhotos = 6 * time.Hour
)

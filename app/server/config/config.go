package config

type Config struct {
	System struct {
		IsProd                bool   // production mode
		Listen                string // listen address
		DBConnectionString    string // Postgres connection string
		RedisConnectionString string // Redis connection string
	}
	Security struct {
		SignatureSecretKey string // signing key for JWT; rotating it invalidates existing sessions
	}
	Upstream struct {
		NasaAPIKey   string // api.nasa.gov key (DEMO_KEY works for light use)
		NasaEndpoint string // upstream base URL, overridable for testing
	}
}

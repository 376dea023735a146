package config

type Config struct {
	// Basics
	IsProd bool

	// Server to talk to
	ServerEndpoint string

	// Where the session token is kept between runs
	TokenFile string
}

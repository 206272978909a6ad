package config

import "time"

type Client struct {
	ServerAddr     string        `yaml:"server_addr" env:"SERVER_ADDR" env-required:"true"`
	Name           string        `yaml:"name" env:"NAME" env-required:"true"`
	Payload        string        `yaml:"payload" env:"PAYLOAD" env-default:"Genesis Block" env-description:"block payload to notarize"`
	Connections    int           `yaml:"connections" env:"CLIENT_CONNECTIONS" env-default:"1"`
	RetryAttempts  int           `yaml:"retry_attempts" env:"CLIENT_RETRY_ATTEMPTS" env-default:"3"`
	RetryDelay     time.Duration `yaml:"retry_delay" env:"CLIENT_RETRY_DELAY" env-default:"5s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CLIENT_REQUEST_TIMEOUT" env-default:"30s"`
}

package config

import "time"

type Server struct {
	Addr      string        `yaml:"addr" env:"ADDR" env-required:"true" env-description:"listen address"`
	Name      string        `yaml:"name" env:"NAME" env-required:"true" env-description:"service name used in logs"`
	Deadline  time.Duration `yaml:"deadline" env:"DEADLINE" env-required:"true" env-description:"per-connection deadline"`
	KeepAlive time.Duration `yaml:"keep_alive" env:"SERVER_KEEP_ALIVE" env-default:"15s"`
}

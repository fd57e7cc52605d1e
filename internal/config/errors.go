package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownStoreBackend error if config store.backend is neither gorm nor redis.
	ErrUnknownStoreBackend = errors.New("toml config store.backend is not supported")

	// ErrEmptyRedisAddr error if the redis backend is selected without an address.
	ErrEmptyRedisAddr = errors.New("toml config store.redis.addr can not be empty")
)

package config

import "time"

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or the file path for sqlite
	GormEngine string // sqlite, mysql or postgres
}

// Redis holds the redis connection settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration // per call timeout
}

// Store selects where the collections are kept.
type Store struct {
	Backend string // gorm or redis
	Redis   Redis
}

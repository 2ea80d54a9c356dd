package database

import "fmt"

type PostgresSettings struct {
	User       string `envconfig:"DB_USER" default:"admin"`
	Password   string `envconfig:"DB_PASSWORD" default:"password"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"coin_shop_db"`
	SSLEnabled bool   `envconfig:"DB_SSL_ENABLED" default:"false"`
}

func (s PostgresSettings) GetURL() string {
	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", s.User, s.Password, s.Host, s.Port, s.DBName)
	if !s.SSLEnabled {
		url += "?sslmode=disable"
	}

	return url
}

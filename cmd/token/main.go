package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/jwt"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/kelseyhightower/envconfig"
)

type tokenConfig struct {
	JwtSecret string `envconfig:"JWT_SECRET" required:"true"`
}

// token issues a bearer token for the chat bridge to call the shop on behalf of a platform user.
func main() {
	userID := flag.Int64("user", 0, "platform user id")
	admin := flag.Bool("admin", false, "grant shop admin permissions")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logger := logging.StdoutLogger

	var cfg tokenConfig
	if err := envconfig.Process("", &cfg); err != nil || cfg.JwtSecret == "" {
		logger.Error("JWT_SECRET must be set", "error", err)
		os.Exit(1)
	}

	if *userID <= 0 {
		logger.Error("user id must be positive", "user", *userID)
		os.Exit(1)
	}

	token, err := jwt.NewJWTTokenIssuer().IssueToken([]byte(cfg.JwtSecret), *userID, *admin, *ttl)
	if err != nil {
		logger.Error("failed to issue token", "error", err.Error())
		os.Exit(1)
	}

	fmt.Println(token)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/linemk/order-days/internal/app"
	"github.com/linemk/order-days/internal/config"
	"github.com/linemk/order-days/internal/lib/logger"
	"github.com/linemk/order-days/internal/service"
	"github.com/linemk/order-days/internal/storage"
	"github.com/pkg/errors"
)

// createuser заводит оператора или меняет пароль существующего (upsert по логину)
func main() {
	var username, password, name string
	flag.StringVar(&username, "username", "", "login of the user")
	flag.StringVar(&password, "password", "", "plain password, stored as bcrypt hash")
	flag.StringVar(&name, "name", "", "display name")

	cfg := config.MustLoad()
	log := logger.SetupLogger(cfg.Env)

	if password == "" {
		password = os.Getenv("USER_PASSWORD")
	}

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", logger.Err(err))
		os.Exit(1)
	}
	defer application.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	authService := service.NewAuthService(log, storage.NewUserRepository(application.DB), cfg.JWT.Secret, cfg.JWT.TokenTTL)
	user, err := authService.ProvisionUser(ctx, username, password, name)
	if err != nil {
		log.Error("failed to create user", logger.Err(errors.Wrap(err, "createuser")))
		os.Exit(1)
	}

	log.Info("user upserted", slog.Int64("id", user.ID), slog.String("username", user.Username))
	fmt.Printf("Login with username: %s\n", user.Username)
}

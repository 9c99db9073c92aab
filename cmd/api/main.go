package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/enlistment/internal/pkg/logger"
	"github.com/yigit/enlistment/internal/server"
)

// @title Course Enlistment API
// @version 1.0
// @description CRUD API for users, roles, courses, subjects, sections and enrollments

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer session token returned by POST /users/login

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		logger.Error().Err(err).Msg("Enlistment API exited with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	srv, err := server.NewServer(ctx, configPath)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

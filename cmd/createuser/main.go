// Command createuser adds an ADMIN or OPERATOR account so that someone can
// log in to the seat editor.
//
//	createuser -email ops@example.com -password secret -role OPERATOR
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-editor/internal/config"
	"github.com/iliyamo/cinema-seat-editor/internal/database"
	"github.com/iliyamo/cinema-seat-editor/internal/logger"
	"github.com/iliyamo/cinema-seat-editor/internal/model"
	"github.com/iliyamo/cinema-seat-editor/internal/repository"
	"github.com/iliyamo/cinema-seat-editor/internal/utils"
)

func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "plain password")
	role := flag.String("role", model.RoleOperator, "ADMIN or OPERATOR")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, "console", "createuser")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	r := strings.ToUpper(*role)
	if *email == "" || *password == "" || (r != model.RoleAdmin && r != model.RoleOperator) {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	hash, err := utils.HashPassword(*password, cfg.BcryptCost)
	if err != nil {
		log.Fatal("hash password", zap.Error(err))
	}
	id, err := repository.NewUserRepo(db).Create(ctx, *email, hash, r)
	if err != nil {
		log.Fatal("create user", zap.String("email", *email), zap.Error(err))
	}
	log.Info("user created", zap.Uint64("id", id), zap.String("email", repository.NormalizeEmail(*email)), zap.String("role", r))
}

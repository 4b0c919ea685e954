// Command approve_creator toggles the approved flag of a creator profile, which controls whether the creator's
// packages appear in the public catalog.
//
//	DATABASE_URI=postgres://... approve_creator -user <uuid> [-approved=false]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fsdevblog/creatorbook/internal/logger"
	"github.com/fsdevblog/creatorbook/internal/repository/pgrepo"
	"github.com/fsdevblog/creatorbook/internal/service"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const approveTimeout = 10 * time.Second

type adminConfig struct {
	DatabaseDSN string `env:"DATABASE_URI,required"`
}

func main() {
	l := logger.New(os.Stderr)

	userFlag := flag.String("user", "", "User id of the profile")
	approved := flag.Bool("approved", true, "Approved flag to set")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		l.WithError(err).Fatal("-user must be a uuid")
	}

	_ = godotenv.Load()
	var conf adminConfig
	if envErr := env.Parse(&conf); envErr != nil {
		l.WithError(envErr).Fatal("parse env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), approveTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, conf.DatabaseDSN)
	if err != nil {
		l.WithError(err).Fatal("connect to postgres")
	}
	defer pool.Close()

	unitOfWork, err := pgrepo.NewUnitOfWork(pool, uow.DefaultRetryPolicy())
	if err != nil {
		l.WithError(err).Fatal("init unit of work")
	}
	profiles, err := service.NewProfileService(unitOfWork)
	if err != nil {
		l.WithError(err).Fatal("init profile service")
	}

	profile, err := profiles.SetApproved(ctx, userID, *approved)
	if err != nil {
		l.WithError(err).WithField("userID", userID).Fatal("set approved")
	}
	l.WithField("userID", profile.UserID).
		WithField("approved", profile.Approved).
		Info("profile updated")
}

package main

import (
	"database/sql"
	"time"

	"chatpoker-server/internal/config"
	"chatpoker-server/pkg/db"
	"github.com/sirupsen/logrus"
)

func main() {
	dbh := waitForDB()
	if err := db.Migrate(dbh, config.Instance().MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}
}

func waitForDB() *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh, err := db.Open(config.Instance().PGDSN)
			if err == nil {
				return dbh
			}

			logrus.WithError(err).Debug("database not ready")
			time.Sleep(time.Millisecond * 500)
		}
	}
}

package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/storage/database"
	sqlxrepos "github.com/Shrest4647/ioe-student-utils-sub001/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())
	dbx := sqlx.NewDb(db, "postgres")

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: sqlxrepos.NewUserRepository(dbx),
		ltrRepo: sqlxrepos.NewLetterRepository(dbx),
		uniRepo: sqlxrepos.NewUniversityRepository(dbx),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

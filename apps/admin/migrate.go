package main

import (
	"github.com/jmoiron/sqlx"

	"github.com/DustinMarino133/cyberskill/storage/database"
)

var migrateFunc = func(db *sqlx.DB, command string, args ...string) error { // mockable
	return database.Migrate(db, command, args...)
}

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return migrateFunc(cli.db, args[0], arguments...)
}

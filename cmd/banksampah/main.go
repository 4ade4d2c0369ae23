package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "banksampah",
		Usage: "Waste bank management backend",
		Commands: []*cli.Command{
			migrateCommand,
			rollbackCommand,
			seedCommand,
			auditCommand,
			repairCommand,
			matchCommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}

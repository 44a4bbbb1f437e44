package main

import (
	"os"

	"github.com/Defacto2/sevenzip/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

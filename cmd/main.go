package main

import (
	"cryptoexchange/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Crypto Exchange API
// @version 1.0
// @description Crypto-to-fiat exchange rates and order pricing.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped with error")
	}
}

// cmd/smartheater/main.go
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// set via -ldflags "-X main.buildVersion=... -X main.buildDate=..."
var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

package main

import (
	"flag"

	"github.com/joshuarp/timeshard-api/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (default: config.yaml, then .env)")
	flag.Parse()

	app.New(*configPath, app.MintModule()).Run()
}

package main

import (
	"github.com/projectdiscovery/gologger"

	"github.com/zonefeed/zonefeed/pkg/runner"
)

func main() {
	// Parse the command line flags and read config files
	options := runner.ParseOptions()

	zoneRunner, err := runner.New(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	if err := zoneRunner.Run(); err != nil {
		gologger.Fatal().Msgf("Could not run parser: %s\n", err)
	}
	zoneRunner.Close()
}

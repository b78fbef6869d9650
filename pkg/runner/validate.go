package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/zonefeed/zonefeed/internal/scanner"
)

// validateOptions validates the configuration options passed
func (options *Options) validateOptions() error {
	if options.Version {
		return nil
	}

	// Both verbose and silent flags were used
	if options.Verbose && options.Silent {
		return errors.New("both verbose and silent mode specified")
	}

	if options.Zones == "" {
		return errors.New("no zone file provided")
	}
	for _, zone := range strings.Split(options.Zones, ",") {
		if zone = strings.TrimSpace(zone); zone == "" {
			continue
		}
		if !fileutil.FileExists(zone) {
			return fmt.Errorf("zone file %s doesn't exist", zone)
		}
	}

	switch strings.ToUpper(options.Class) {
	case "IN", "CS", "CH", "HS":
	default:
		return fmt.Errorf("invalid class %s", options.Class)
	}

	if options.TTL < 1 || options.TTL > 1<<31-1 {
		return fmt.Errorf("ttl %d out of range", options.TTL)
	}

	if options.Threads < 1 {
		return errors.New("threads must be at least one")
	}

	if options.Target != "" && scanner.Lookup(options.Target) == nil {
		return fmt.Errorf("unknown indexer target %s", options.Target)
	}

	return nil
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	// If the user desires verbose output, show verbose output
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

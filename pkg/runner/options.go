package runner

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
)

// Options contains the configuration options for a zone parsing run.
type Options struct {
	Zones    string // Zones is a comma-separated list of zone files to parse
	Origin   string // Origin is the initial origin for relative names
	TTL      int    // TTL is the default time-to-live for records that carry none
	Class    string // Class is the default class for records that carry none
	Output   string // Output is the file to write parsed records to
	StoreDir string // StoreDir enables the on-disk record store under this directory
	Stats    bool   // Stats prints a per-type record summary after parsing
	Lax      bool   // Lax skips records with semantic errors instead of aborting
	Target   string // Target forces an indexer variant (haswell, westmere, fallback)
	Threads  int    // Threads controls how many zone files parse concurrently
	Silent   bool   // Silent suppresses any extra text and only writes records
	Verbose  bool   // Verbose enables verbose output
	NoColor  bool   // NoColor disables the colored output
	Version  bool   // Version specifies if we should just show version and exit
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`zonefeed parses DNS zone files into wire-format resource records at SIMD speed.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&options.Zones, "zone", "z", "", "zone files to parse (comma-separated)"),
		flagSet.StringVarP(&options.Origin, "origin", "o", ".", "origin for relative names"),
		flagSet.IntVar(&options.TTL, "ttl", 3600, "default ttl for records without one"),
		flagSet.StringVar(&options.Class, "class", "IN", "default class for records without one"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "out", "", "file to write parsed records to (optional)"),
		flagSet.StringVar(&options.StoreDir, "store", "", "directory for the on-disk record store (optional)"),
		flagSet.BoolVar(&options.Stats, "stats", false, "print a per-type record summary"),
	)

	flagSet.CreateGroup("config", "Configuration",
		flagSet.BoolVar(&options.Lax, "lax", false, "skip records with semantic errors"),
		flagSet.StringVar(&options.Target, "target", "", "force an indexer variant (haswell, westmere, fallback)"),
		flagSet.IntVarP(&options.Threads, "threads", "t", 4, "number of zone files to parse concurrently"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Silent, "silent", false, "show only records in output"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "don't use colors in output"),
		flagSet.BoolVar(&options.Version, "version", false, "show version of zonefeed"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not parse flags: %s\n", err)
	}

	// Configure the logging
	options.configureOutput()

	// Show the user the banner
	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version)
	}

	// Validate the options passed by the user and if any
	// invalid options have been used, exit.
	if err := options.validateOptions(); err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}

package runner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"
	"github.com/projectdiscovery/gologger"
	ioutil "github.com/projectdiscovery/utils/io"
	sliceutil "github.com/projectdiscovery/utils/slice"
	"github.com/remeh/sizedwaitgroup"

	"github.com/zonefeed/zonefeed/internal/store"
	diskstore "github.com/zonefeed/zonefeed/pkg/store"
	"github.com/zonefeed/zonefeed/pkg/zone"
)

// Runner is a client for running a zone parsing process.
type Runner struct {
	options *Options
	stats   *store.Store
	statsMu sync.Mutex
	disk    *diskstore.Store
	writer  *ioutil.SafeWriter
}

// New creates a new client for running a zone parsing process.
func New(options *Options) (*Runner, error) {
	runner := &Runner{
		options: options,
		stats:   store.New(),
	}
	if options.StoreDir != "" {
		disk, err := diskstore.New(options.StoreDir)
		if err != nil {
			return nil, fmt.Errorf("could not create record store: %w", err)
		}
		runner.disk = disk
	}
	return runner, nil
}

// Close releases all the resources and cleans up
func (r *Runner) Close() {
	if r.disk != nil {
		r.disk.Close()
	}
}

// Run parses the configured zone files, each with its own parser context,
// and writes the records out.
func (r *Runner) Run() error {
	zones := sliceutil.Dedupe(strings.Split(r.options.Zones, ","))

	var output *os.File
	var w *bufio.Writer
	if r.options.Output != "" {
		var err error
		output, err = os.Create(r.options.Output)
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		w = bufio.NewWriter(output)
		safeWriter, err := ioutil.NewSafeWriter(w)
		if err != nil {
			return fmt.Errorf("could not create safe writer: %w", err)
		}
		r.writer = safeWriter
	}

	gologger.Info().Msgf("Started parsing %d zone file(s)\n", len(zones))
	now := time.Now()

	swg := sizedwaitgroup.New(r.options.Threads)
	var failed int32
	var failedMu sync.Mutex

	for _, zoneFile := range zones {
		zoneFile = strings.TrimSpace(zoneFile)
		if zoneFile == "" {
			continue
		}
		swg.Add()
		go func(zoneFile string) {
			defer swg.Done()

			if code := r.parseZone(zoneFile); code != zone.Success {
				gologger.Error().Msgf("Could not parse %s: %s (%d)\n", zoneFile, code, code)
				failedMu.Lock()
				failed++
				failedMu.Unlock()
			}
		}(zoneFile)
	}
	swg.Wait()

	gologger.Info().Msgf("Parsing completed in %s (%d records)\n", time.Since(now), r.stats.Total())

	if r.options.Stats {
		r.stats.Iterate(func(rrtype uint16, count int) {
			gologger.Info().Msgf("%-10s %d\n", typeString(rrtype), count)
		})
	}
	if r.disk != nil {
		gologger.Info().Msgf("Stored %d unique records\n", r.disk.Count())
	}

	if output != nil {
		_ = w.Flush()
		_ = output.Close()
	}
	if failed > 0 {
		return fmt.Errorf("%d zone file(s) failed to parse", failed)
	}
	return nil
}

// parseZone runs one parser over one zone file.
func (r *Runner) parseZone(zoneFile string) zone.Code {
	options := &zone.Options{
		Origin:       r.options.Origin,
		DefaultTTL:   uint32(r.options.TTL),
		DefaultClass: classCode(r.options.Class),
		Accept:       r.accept,
		Lax:          r.options.Lax,
		Target:       r.options.Target,
	}
	cache := zone.NewCache(1)
	return zone.ParseFile(options, cache, zoneFile, nil)
}

// accept is the record sink shared by all parser contexts. Records are
// written in the RFC 3597 generic form, which round-trips any type.
func (r *Runner) accept(_ *zone.Parser, owner *zone.Name, rrtype, class uint16, ttl uint32, rdata []byte, _ interface{}) int32 {
	r.statsMu.Lock()
	r.stats.Add(rrtype)
	r.statsMu.Unlock()

	if r.disk != nil {
		if err := r.disk.Put(owner.Bytes(), rrtype, class, ttl, rdata); err != nil {
			gologger.Error().Msgf("Could not store record: %s\n", err)
			return -1
		}
	}

	line := fmt.Sprintf("%s %d %s %s \\# %d %X\n",
		owner, ttl, classString(class), typeString(rrtype), len(rdata), rdata)
	if r.writer != nil {
		_, _ = r.writer.Write([]byte(line))
	}
	gologger.Silent().Msgf("%s", line)
	return 0
}

func typeString(rrtype uint16) string {
	if s, ok := dns.TypeToString[rrtype]; ok {
		return s
	}
	return fmt.Sprintf("TYPE%d", rrtype)
}

func classString(class uint16) string {
	switch class {
	case zone.ClassIN:
		return "IN"
	case zone.ClassCS:
		return "CS"
	case zone.ClassCH:
		return "CH"
	case zone.ClassHS:
		return "HS"
	}
	return fmt.Sprintf("CLASS%d", class)
}

func classCode(class string) uint16 {
	switch strings.ToUpper(class) {
	case "CS":
		return zone.ClassCS
	case "CH":
		return zone.ClassCH
	case "HS":
		return zone.ClassHS
	}
	return zone.ClassIN
}

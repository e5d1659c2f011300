// Command gridintensity queries the Carbon Intensity API for a region,
// postcode area or the national aggregate.
//
// Usage:
//
//	gridintensity [flags] [target]
//
// The target is a region id (1-17), an outward postcode ("BS7") or
// empty/"national" for the national aggregate. Without date flags the
// current value is printed; with -start-date (and optionally
// -end-date) every half-hour forecast in the range is printed as
// "timestamp, value" lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/carbonwatch/carbon-intensity-client/pkg/client"
	"github.com/carbonwatch/carbon-intensity-client/pkg/intensity"
	"github.com/carbonwatch/carbon-intensity-client/pkg/logging"
	"github.com/carbonwatch/carbon-intensity-client/pkg/target"
	"github.com/carbonwatch/carbon-intensity-client/pkg/timerange"
)

func main() {
	// Optional .env for CARBON_API_URL and friends; absence is fine.
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// envOrString returns the environment variable value if set, otherwise
// the default value.
func envOrString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gridintensity", flag.ContinueOnError)
	fs.SetOutput(stderr)

	startDate := fs.String("start-date", "", "Range start, YYYY-MM-DD or YYYY-MM-DDThh:mmZ")
	endDate := fs.String("end-date", "", "Range end, same formats (default: now)")
	baseURL := fs.String("base-url", envOrString("CARBON_API_URL", client.DefaultBaseURL), "API base URL")
	timeout := fs.Duration("timeout", 30*time.Second, "Timeout per API request")
	logLevel := fs.String("log-level", envOrString("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
	pretty := fs.Bool("pretty", false, "Human-readable log output")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(*logLevel),
		Pretty: *pretty,
		Output: stderr,
	})

	tgt := target.Parse(fs.Arg(0))

	cfg := client.DefaultConfig()
	cfg.BaseURL = *baseURL
	cfg.Timeout = *timeout

	c, err := client.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	svc := intensity.NewService(c)

	ctx := context.Background()

	if *startDate == "" && *endDate == "" {
		value, err := svc.CurrentIntensity(ctx, tgt)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Carbon intensity for %s: %d\n", tgt, value)
		return 0
	}

	if *startDate == "" {
		fmt.Fprintln(stderr, "Error: -start-date is required when -end-date is given")
		return 1
	}

	measurements, err := svc.Intensities(ctx, tgt, *startDate, *endDate)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	for _, m := range measurements {
		fmt.Fprintf(stdout, "%s, %d\n", timerange.FormatInstant(m.Time), m.Forecast)
	}
	return 0
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"salesetl/internal/config"
	"salesetl/internal/etl"
	"salesetl/internal/metrics"
	"salesetl/internal/metrics/prompush"

	// register all backends with the storage factory; the environment
	// selects which one a run actually uses.
	_ "salesetl/internal/storage/all"
)

// main is the entry point for the sales ETL binary. Configuration comes from
// the environment; flags only control validation mode and metrics.
func main() {
	var (
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fatalf("resolve config: %v", err)
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasError(issues) {
		log.Printf("configuration is invalid")
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(cfg.SourceName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v backend=%v job=%v", gwURL, backendName, cfg.SourceName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	if *verbose {
		log.Printf("pipeline: mode=%s source=%s inputs=%v evidence=%s",
			cfg.ConnectionMode, cfg.SourceName, cfg.InputPaths(), cfg.EvidenceDir)
	}

	start := time.Now()
	sum, err := etl.Run(context.Background(), cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	log.Printf("run %s: %d rows committed as SourceID=%d; %d evidence reports in %s",
		sum.RunID, sum.Inserted.Total(), sum.SourceID, len(sum.Evidence), cfg.EvidenceDir)
	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// Command evsimd runs the fleet simulator behind a long-lived HTTP/WS
// server for an external viewer. The YAML config comes from -config;
// the listen address and log level come from the EVSIMD_ADDR and
// EVSIMD_LOG_LEVEL environment variables, with built-in defaults.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/stickysnack/ev-fleet-sim/internal/api"
	"github.com/stickysnack/ev-fleet-sim/internal/config"
	"github.com/stickysnack/ev-fleet-sim/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := log.New(os.Stdout, "evsimd: ", log.LstdFlags)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal(err)
		}
		cfg = loaded
	}

	v := viper.New()
	v.SetEnvPrefix("EVSIMD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("addr", ":8089")
	v.SetDefault("log-level", "info")
	v.BindEnv("addr")
	v.BindEnv("log-level")

	addr := v.GetString("addr")
	logger.Printf("log level %s, config scale=%s policy=%s horizon=%d",
		v.GetString("log-level"), cfg.Scale, cfg.Policy, cfg.Horizon)

	s, err := sim.New(cfg)
	if err != nil {
		logger.Fatal(err)
	}

	logger.Printf("serving run %s on %s", s.RunID(), addr)
	srv := api.NewServer(addr, s)
	if err := srv.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

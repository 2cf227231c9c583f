// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"parsecheck/internal/config"
	"parsecheck/internal/server"
)

var log = commonlog.GetLogger("parsecheck.server")

func main() {
	configPath := flag.String("config", config.FileName, "configuration file")
	port := flag.Int("port", 0, "server port (default from the configuration)")
	mcrl22lps := flag.String("mcrl22lps", "", "mcrl22lps executable")
	lps2pbes := flag.String("lps2pbes", "", "lps2pbes executable")
	mcrl22lpsOld := flag.String("mcrl22lps-old", "", "mcrl22lps executable of the previous release")
	lps2pbesOld := flag.String("lps2pbes-old", "", "lps2pbes executable of the previous release")
	verbosity := flag.Int("v", 1, "log verbosity")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	// Flags override the configuration file.
	for _, o := range []struct {
		flag   string
		target *string
	}{
		{*mcrl22lps, &cfg.Tools.Mcrl22lps},
		{*lps2pbes, &cfg.Tools.Lps2pbes},
		{*mcrl22lpsOld, &cfg.Tools.Mcrl22lpsOld},
		{*lps2pbesOld, &cfg.Tools.Lps2pbesOld},
	} {
		if o.flag != "" {
			*o.target = o.flag
		}
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(max(*verbosity, cfg.Log.Verbosity), logFile)

	for _, missing := range cfg.MissingTools() {
		log.Errorf("tool does not exist at: %s", missing)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addr := net.JoinHostPort(cfg.Server.Addr, strconv.Itoa(cfg.Server.Port))
	fmt.Printf("Server running on http://%s\n", addr)

	s := server.New(cfg.Tools.Mcrl22lps, nil)
	if err := s.ListenAndServe(ctx, addr); err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
}

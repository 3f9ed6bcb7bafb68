// Command feedsim drives ad-slot controllers from a simulated vertical feed.
//
// Scrolling mounts and tears down slots the way a virtualized list does;
// refreshing the feed changes slot identities in place. The footer shows the
// resource ledger's live-handle accounting, which makes leaks and double
// disposals visible immediately.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/feedlab/adslot"
	"github.com/feedlab/adslot/creative/stub"
	"github.com/feedlab/adslot/resource"
)

func main() {
	var (
		rows      = flag.Int("rows", 60, "Total feed rows")
		every     = flag.Int("every", 5, "Ad slot every N rows")
		window    = flag.Int("window", 12, "Visible rows")
		latency   = flag.Duration("latency", 400*time.Millisecond, "Simulated ad fetch latency")
		failEvery = flag.Int("fail-every", 7, "Every nth ad request is a no-fill (0 = never)")
		noBackend = flag.Bool("no-backend", false, "Run without a loader backend (every slot unsupported)")
		debugLog  = flag.String("debug-log", "", "Write debug logs to this file")
	)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "feedsim needs a terminal")
		os.Exit(1)
	}

	if *debugLog != "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{*debugLog}
		cfg.ErrorOutputPaths = []string{*debugLog}
		logger, err := cfg.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		adslot.SetLogger(logger)
	}

	// The demo supplies its own unit id unless the environment has one.
	if os.Getenv("ADSLOT_UNIT_ID") == "" {
		os.Setenv("ADSLOT_UNIT_ID", "feedsim-demo-unit")
	}

	ledger := resource.NewLedger()
	if !*noBackend {
		backend := stub.New(ledger,
			stub.WithLatency(*latency),
			stub.WithFailEvery(*failEvery),
		)
		backend.Register()
	}

	m := newFeedModel(ledger, *rows, *every, *window)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ============================================================================
// DATAVIEWS CLI — Query template exports and exercise editor shortcuts
// ============================================================================
//
// Usage:
//
//	dataviews templates list --file templates.json --search single --sort title:desc
//	dataviews templates list --url https://example.com/wp-json --filter author:in:Jane
//	dataviews templates authors --file templates.csv
//	dataviews templates preview tt4//single --file templates.json
//	dataviews shortcuts list --category global --apple
//	dataviews shortcuts press "ctrl+alt+shift+m" "shift+alt+o"
//
// Environment:
//
//	DATAVIEWS_LOG_LEVEL, DATAVIEWS_SOURCE_FILE, DATAVIEWS_SOURCE_URL,
//	DATAVIEWS_VIEW_PER_PAGE, DATAVIEWS_VIEW_LOCALE, ... (see internal/config)
// ============================================================================

const version = "0.3.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

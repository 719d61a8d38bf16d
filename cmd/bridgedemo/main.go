// Command bridgedemo runs engine workers that log from many goroutines while a single
// event loop consumes the diagnostics through a zap sink.
//
// Set LOGBRIDGE_VERBOSITY to debug, info or error to change the initial threshold.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/trickstertwo/xclock/adapter/frozen"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/trickstertwo/logbridge"
	"github.com/trickstertwo/logbridge/binding"
	"github.com/trickstertwo/logbridge/sink/zapsink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bridgedemo:", err)
		os.Exit(1)
	}
}

func run() error {
	// Pin deterministic time for demo output.
	frozen.Use(frozen.Config{
		Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	x, err := binding.Init(binding.Config{Verbosity: "debug", EngineConsole: true})
	if err != nil {
		return err
	}
	eng := x.Engine()

	// Written synchronously by the engine itself.
	eng.Log("server.cc", 12, logbridge.SeverityInfo, "engine starting, no callback yet")

	sink, _ := zapsink.NewJSON(zapcore.Lock(os.Stdout), logbridge.SeverityDebug)
	if err := x.SetDefaultLoggerCallback(sink.Callback()); err != nil {
		return err
	}

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			file := fmt.Sprintf("worker_%d.cc", w)
			for i := 0; i < 3; i++ {
				eng.Log(file, uint32(100+i), logbridge.SeverityInfo, "poll %d complete", i)
			}
			eng.Log(file, 200, logbridge.SeverityDebug, "worker %d idle", w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := x.SetLogVerbosity(binding.LogVerbosity["ERROR"]); err != nil {
		return err
	}
	eng.Log("server.cc", 300, logbridge.SeverityInfo, "suppressed at the producer")
	eng.Log("server.cc", 301, logbridge.SeverityError, "shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := x.Shutdown(ctx); err != nil {
		return err
	}

	st := x.Bridge().Stats()
	fmt.Fprintf(os.Stderr, "emitted=%d delivered=%d\n", st.Emitted, st.Delivered)
	return nil
}

// Package logbridge delivers diagnostics produced by an RPC engine on arbitrary
// goroutines to a single callback running on one consumer context.
//
// Quick start:
//
//	loop, _ := eventloop.New()
//	go loop.Run(ctx)
//
//	b, err := logbridge.NewBuilder().
//		WithEngine(core).
//		WithExecutor(logbridge.LoopExecutor(loop)).
//		Build()
//	if err != nil { ... }
//	_ = b.RegisterCallback(func(e logbridge.LogEvent) {
//		fmt.Println(e.Severity(), e.File(), e.Line(), e.Message())
//	})
//
// Producers never block on the consumer: Emit copies the event into a shared queue and
// requests at most one pending wake on the executor. Each wake drains the whole queue and
// calls the callback once per event, in the order events were queued.
//
// Severity filtering happens at production time through a Gate shared with the engine.
// Changing the threshold affects events produced afterwards only.
package logbridge

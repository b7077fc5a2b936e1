package main

import (
	"context"
	"log/slog"
	"os"

	"skolexport/cmd/skolexport/commands"
	"skolexport/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.InitSlog(false)

	// telemetry is opt-in, a missing telemetry.json5 just means slog only
	tel, err := telemetry.SetupFromEnv(ctx, "skolexport")
	if err == nil {
		defer tel.Shutdown(ctx)
		telemetry.InstrumentPerfStats(ctx)
	} else if !os.IsNotExist(err) {
		slog.Warn("failed to set up telemetry", "err", err)
	}

	commands.ExecuteContext(ctx)
}

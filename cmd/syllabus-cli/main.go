package main

import (
	"syllabus-harvester/cmd/syllabus-cli/commands"
	"syllabus-harvester/lib/serviceutil"
	"syllabus-harvester/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "syllabus-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}

// Command nexus runs payloads through config-declared adapters.
//
//	nexus broadcast '{"sensor":"temp","value":23.5,"unit":"°C"}'
//	nexus chain "Real-time sensor stream" --adapters STREAM_PIPELINE_003,JSON_PIPELINE_001
//	nexus recover "Real-time sensor stream" --primary CSV_PIPELINE_002 --fallback STREAM_PIPELINE_003
//	nexus batch --adapter CSV_PIPELINE_002 "action,login" "user,action,action"
//	nexus demo
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Command hcpctl runs the hierarchical-community-detection Metropolis-Hastings
// sampler described by a parameters file and records its sampled state.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arolim/hcp-mcmc/cmd/hcpctl/cmd"
	"github.com/arolim/hcp-mcmc/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	shutdown, err := telemetry.Init(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry init failed, continuing without tracing: %v\n", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "telemetry shutdown: %v\n", err)
		}
	}()

	cmd.Execute()
}

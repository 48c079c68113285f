package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/arolim/hcp-mcmc/internal/config"
	"github.com/arolim/hcp-mcmc/internal/gml"
	"github.com/arolim/hcp-mcmc/internal/runid"
	"github.com/arolim/hcp-mcmc/internal/sampler"
	"github.com/arolim/hcp-mcmc/internal/snapshot"
	"github.com/arolim/hcp-mcmc/pkg/utils"
)

var (
	snapshotEvery int
	sinkKind      string
	sqliteName    string
)

var runCmd = &cobra.Command{
	Use:   "run <params-file>",
	Short: "Run the sampler for one parameters file",
	Long: `run loads a parameters file, builds the graph and initial group
assignment it describes, and iterates the Metropolis-Hastings sampler for
max_itr steps, periodically recording its state to the configured sink.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&snapshotEvery, "snapshot-every", 1000, "Record a sample every N accepted-or-rejected steps")
	runCmd.Flags().StringVar(&sinkKind, "sink", "flatfile", "Where to record samples: flatfile, sqlite, or both")
	runCmd.Flags().StringVar(&sqliteName, "sqlite-file", "samples.db", "SQLite database filename, used when --sink includes sqlite")
}

func runRun(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	timer := utils.NewTimer("hcpctl run", utils.WithLogger(log))
	defer timer.PrintSummary()

	paramsPath := args[0]
	loadPhase := timer.Start("load_parameters")
	params, err := config.Load(paramsPath)
	loadPhase.Stop()
	if err != nil {
		return fmt.Errorf("loading parameters: %w", err)
	}

	base := filepath.Dir(paramsPath)
	params = params.ResolvePaths(base)
	params, seed := params.ResolveSeed()

	run := runid.New()
	log.Info("run %s starting", run)
	log.Info("gml_path:      %s", params.GMLPath)
	log.Info("save_directory: %s", params.SaveDirectory)
	log.Info("seed:          %d", seed)

	graphPhase := timer.Start("parse_graph")
	g, err := gml.ParseFile(params.GMLPath)
	graphPhase.Stop()
	if err != nil {
		return fmt.Errorf("parsing graph: %w", err)
	}
	log.Info("graph: %d nodes, %d edges", g.NumNodes(), g.NumEdges())

	rng := sampler.NewDefaultRNG(seed)

	initialGroups := params.InitialGroupConfig
	if len(initialGroups) == 0 {
		initialGroups = sampler.RandomInitialGroups(g.NumNodes(), params.InitialNumGroups, rng)
	} else if len(initialGroups) != g.NumNodes() {
		return fmt.Errorf("initial_group_config has %d entries, graph has %d nodes", len(initialGroups), g.NumNodes())
	}

	samp, err := sampler.New(g, initialGroups, params.InitialNumGroups, params.MaxNumGroups, rng)
	if err != nil {
		return fmt.Errorf("constructing sampler: %w", err)
	}

	sinks, err := buildSinks(params.SaveDirectory, params.SavedDataName, run)
	if err != nil {
		return fmt.Errorf("opening snapshot sinks: %w", err)
	}
	defer func() {
		for _, s := range sinks {
			if cerr := s.Close(); cerr != nil {
				log.Warn("closing snapshot sink: %v", cerr)
			}
		}
	}()

	tracer := otel.Tracer("hcp-sampler")
	ctx := context.Background()

	runPhase := timer.Start("sample")
	var iteration uint64
	for ; iteration < params.MaxIterations; iteration++ {
		_, span := tracer.Start(ctx, "hcp.sample")
		accepted, err := samp.Step()
		span.SetAttributes(
			attribute.Int64("iteration", int64(iteration)),
			attribute.Float64("log_like", samp.LogLike()),
			attribute.Int("num_groups", samp.NumGroups()),
			attribute.Bool("accepted", accepted),
		)
		span.End()
		if err != nil {
			return fmt.Errorf("step %d: %w", iteration, err)
		}

		if snapshotEvery > 0 && int(iteration)%snapshotEvery == 0 {
			sample := snapshot.Sample{
				Iteration: int(iteration),
				Groups:    samp.Groups(),
				NumGroups: samp.NumGroups(),
				GroupSize: samp.GroupSizes(),
				HCGEdges:  samp.HCGEdges(),
				HCGPairs:  samp.HCGPairs(),
				LogLike:   samp.LogLike(),
			}
			for _, s := range sinks {
				if err := s.Record(ctx, sample); err != nil {
					return fmt.Errorf("recording sample at iteration %d: %w", iteration, err)
				}
			}
		}
	}
	runPhase.Stop()

	log.Info("run %s complete: %d iterations, final log_like=%.4f, num_groups=%d",
		run, iteration, samp.LogLike(), samp.NumGroups())
	return nil
}

func buildSinks(directory, baseName, runID string) ([]snapshot.Sink, error) {
	var sinks []snapshot.Sink
	switch sinkKind {
	case "flatfile":
		s, err := snapshot.NewFlatFileSink(directory, baseName)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	case "sqlite":
		s, err := snapshot.NewSQLiteSink(filepath.Join(directory, sqliteName), runID)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	case "both":
		flat, err := snapshot.NewFlatFileSink(directory, baseName)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, flat)
		sq, err := snapshot.NewSQLiteSink(filepath.Join(directory, sqliteName), runID)
		if err != nil {
			flat.Close()
			return nil, err
		}
		sinks = append(sinks, sq)
	default:
		return nil, fmt.Errorf("unknown --sink %q (valid: flatfile, sqlite, both)", sinkKind)
	}
	return sinks, nil
}

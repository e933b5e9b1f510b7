package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/routewise/vrp-engine/pkg/vrp/config"
	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/emit"
	"github.com/routewise/vrp-engine/pkg/vrp/logging"
	"github.com/routewise/vrp-engine/pkg/vrp/metrics"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/mutation"
	"github.com/routewise/vrp-engine/pkg/vrp/objective"
	"github.com/routewise/vrp-engine/pkg/vrp/population"
	"github.com/routewise/vrp-engine/pkg/vrp/randsrc"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
	"github.com/routewise/vrp-engine/pkg/vrp/tracing"
)

func newSolveCmd() *cobra.Command {
	var configPath, chartPath, otlpEndpoint string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run one refinement pass against a problem and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), configPath, chartPath, otlpEndpoint)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to the run configuration YAML file")
	cmd.Flags().StringVar(&chartPath, "chart", "", "path to write the cost-history HTML chart to")
	cmd.Flags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP collector address to export generation spans to")
	cmd.MarkFlagRequired("config")
	return cmd
}

// runSolve wires a run's configuration into a Driver and solves. Building
// the actual Problem (fleet, jobs, distance matrices) is the problem-intake
// collaborator's job — out of scope for the engine itself — so this wires a
// small inline sample problem to exercise the pipeline end to end.
func runSolve(ctx context.Context, configPath, chartPath, otlpEndpoint string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if otlpEndpoint != "" {
		_, shutdown, err := tracing.NewProvider(ctx, otlpEndpoint)
		if err != nil {
			return err
		}
		defer shutdown(ctx)
	}

	var chart io.Writer
	if chartPath != "" {
		f, err := os.Create(chartPath)
		if err != nil {
			return fmt.Errorf("solve: creating chart file %s: %w", chartPath, err)
		}
		defer f.Close()
		chart = f
	}

	problem, err := sampleProblem()
	if err != nil {
		return err
	}

	multi, modules, err := objective.Build(
		config.ToSpecs(cfg.PrimaryObjectives),
		config.ToSpecs(cfg.SecondaryObjectives),
		problem.TransportCosts,
		objective.Kind(cfg.CostObjective),
	)
	if err != nil {
		return err
	}

	pipeline := constraint.NewPipeline(append([]constraint.Module{
		constraint.ReloadConstraint{},
		constraint.CapacityConstraint{},
		constraint.TimeWindowConstraint{Transport: problem.TransportCosts, Activity: problem.ActivityCosts},
		constraint.BreakConstraint{},
		constraint.MultiJobConstraint{},
		constraint.TransportCostConstraint{Transport: problem.TransportCosts},
	}, modules...)...)

	rng := randsrc.New(cfg.Seed)
	seed := &solution.InsertionContext{
		Problem:  problem,
		Pipeline: pipeline,
		Solution: solution.NewSolutionContext(problem),
		Random:   rng,
	}

	rctx := &objective.RefinementContext{}
	pop := population.New(cfg.PopulationCapacity, refinement.MultiComparator{Multi: multi, Objective: rctx})
	quota := &refinement.Quota{}

	mut := mutation.NewRuinRecreate(
		[]mutation.RuinOperator{
			mutation.RandomJobRemoval{Count: cfg.RandomRemovalCount},
			mutation.NeighborhoodRemoval{MinK: cfg.NeighborhoodMinK, MaxK: cfg.NeighborhoodMaxK},
			mutation.RouteRemoval{},
		},
		[]float64{0.5, 0.3, 0.2},
		mutation.RandomOrder{},
	)
	mut.Cancelled = quota.IsReached

	recorder := &emit.Recorder{}
	engineMetrics := metrics.NewRegistry(prometheus.DefaultRegisterer)
	driver := &refinement.Driver{
		Mutator:    mut,
		Multi:      multi,
		Population: pop,
		Acceptance: refinement.GreedyAcceptance{Multi: multi, Population: pop},
		Termination: refinement.CompositeTermination{Terminations: []refinement.Termination{
			refinement.MaxGenerationTermination{Max: cfg.MaxGenerations},
			refinement.QuotaTermination{Quota: quota},
		}},
		Selection:   refinement.BestSelection{Population: pop},
		Log:         logging.KlogSink(),
		Observer:    recorder,
		Metrics:     engineMetrics,
		Trace:       ctx,
		ChartWriter: chart,
		Objective:   rctx,
	}

	result, err := driver.Solve(seed)
	if err != nil {
		return fmt.Errorf("solve: after %d generations: %w", result.Generations, err)
	}

	emitted := emit.Build("sample", result.Best.Context, result.Best.Cost, &emit.Extras{Iterations: recorder.Iterations})
	fmt.Printf("best cost: %.4f (generation %d)\n", emitted.Statistic.Cost, result.Best.Generation)
	fmt.Printf("tours: %d, unassigned jobs: %d\n", len(emitted.Tours), len(emitted.Unassigned))
	return nil
}

// sampleProblem builds a minimal fleet/plan to exercise the pipeline when
// no problem-intake collaborator is wired in; replaced entirely once a
// real intake layer is available.
func sampleProblem() (*model.Problem, error) {
	depot := model.Place{Location: model.Location{Index: 0, Lat: 0, Lng: 0}}
	vehicle := model.NewVehicle("v1", "standard", model.Shift{
		Start:  depot,
		End:    depot,
		Window: model.TimeWindow{Start: 0, End: 36000},
	}, model.Demand{})

	fleet := &model.Fleet{Vehicles: []*model.Vehicle{vehicle}}
	plan := model.Plan{}
	transport := &model.EuclideanTransportCosts{SpeedPerUnitTime: 1}

	return model.NewProblem(fleet, plan, transport, model.DefaultActivityCosts{})
}

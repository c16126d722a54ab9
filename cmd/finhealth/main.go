package main

import (
	"finhealth/internal/app"
	"finhealth/internal/benchmark"
	"finhealth/internal/domain"
	"finhealth/internal/ledger"
	"finhealth/internal/logger"
	"finhealth/internal/simulation"
	"finhealth/internal/util"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	ledgerPath     string
	benchmarksPath string
	catalogPath    string

	entityID string
	kind     string

	initialAmount       float64
	monthlyContribution float64
	horizonMonths       int
	strategyName        string
	adjustForInflation  bool
	seed                int64
)

func main() {
	root := &cobra.Command{
		Use:   "finhealth",
		Short: "Financial health scoring and investment simulation engine",
	}

	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Score an entity's financial health from a ledger CSV",
		RunE:  runScore,
	}
	scoreCmd.Flags().StringVar(&ledgerPath, "ledger", "", "path to the ledger CSV (required)")
	scoreCmd.Flags().StringVar(&entityID, "entity", "", "entity id (defaults to the entity with the highest income)")
	scoreCmd.Flags().StringVar(&kind, "kind", string(domain.EntityBusiness), "business or personal")
	scoreCmd.Flags().StringVar(&benchmarksPath, "benchmarks", "", "optional YAML benchmark overrides")
	_ = scoreCmd.MarkFlagRequired("ledger")

	entitiesCmd := &cobra.Command{
		Use:   "entities",
		Short: "List entities present in a ledger CSV",
		RunE:  runEntities,
	}
	entitiesCmd.Flags().StringVar(&ledgerPath, "ledger", "", "path to the ledger CSV (required)")
	_ = entitiesCmd.MarkFlagRequired("ledger")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project a portfolio under one strategy",
		RunE:  runSimulate,
	}
	addSimulationFlags(simulateCmd)
	simulateCmd.Flags().StringVar(&strategyName, "strategy", "moderate", "catalog strategy name")
	simulateCmd.Flags().BoolVar(&adjustForInflation, "inflation", true, "adjust for inflation")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank every catalog strategy for the given parameters",
		RunE:  runCompare,
	}
	addSimulationFlags(compareCmd)

	root.AddCommand(scoreCmd, entitiesCmd, simulateCmd, compareCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&initialAmount, "initial", 10000, "initial amount")
	cmd.Flags().Float64Var(&monthlyContribution, "monthly", 0, "monthly contribution")
	cmd.Flags().IntVar(&horizonMonths, "months", 12, "horizon in months")
	cmd.Flags().Int64Var(&seed, "seed", 0, "rng seed (0 = derive from current time)")
	cmd.Flags().StringVar(&benchmarksPath, "benchmarks", "", "optional YAML benchmark overrides")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "optional YAML strategy catalog")
}

func loadBenchmarks() (*benchmark.Table, error) {
	if benchmarksPath == "" {
		return benchmark.Default(), nil
	}
	return benchmark.LoadFile(benchmarksPath)
}

func loadCatalog() ([]domain.PortfolioStrategy, error) {
	if catalogPath == "" {
		return simulation.DefaultCatalog(), nil
	}
	return simulation.LoadCatalogFile(catalogPath)
}

func newRng() *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func newAdvisor() (app.AdvisorService, error) {
	benchmarks, err := loadBenchmarks()
	if err != nil {
		return nil, err
	}
	transactions, err := ledger.LoadCSVFile(ledgerPath)
	if err != nil {
		return nil, err
	}
	repo := ledger.NewSnapshotRepository(transactions)
	return app.NewAdvisorService(repo, benchmarks, logger.New()), nil
}

func runScore(cmd *cobra.Command, args []string) error {
	advisor, err := newAdvisor()
	if err != nil {
		return err
	}

	if entityID == "" {
		entities := advisor.Entities()
		if len(entities) == 0 {
			return fmt.Errorf("ledger contains no entities")
		}
		entityID = entities[0].EntityID
	}

	switch domain.EntityKind(kind) {
	case domain.EntityBusiness:
		report, err := advisor.AnalyzeBusiness(entityID)
		if err != nil {
			return err
		}
		util.Pprint(report)
	case domain.EntityPersonal:
		report, err := advisor.AnalyzePersonal(entityID)
		if err != nil {
			return err
		}
		util.Pprint(report)
	default:
		return fmt.Errorf("unknown kind %q: %w", kind, domain.ErrInvalidParameter)
	}
	return nil
}

func runEntities(cmd *cobra.Command, args []string) error {
	advisor, err := newAdvisor()
	if err != nil {
		return err
	}
	util.Pprint(advisor.Entities())
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	benchmarks, err := loadBenchmarks()
	if err != nil {
		return err
	}
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	strategy, err := simulation.StrategyByName(catalog, strategyName)
	if err != nil {
		return err
	}

	result, err := simulation.Simulate(simulation.SimulateInput{
		InitialAmount:       initialAmount,
		MonthlyContribution: monthlyContribution,
		HorizonMonths:       horizonMonths,
		Strategy:            strategy,
		AdjustForInflation:  adjustForInflation,
		AnnualInflationPct:  benchmarks.Market.AnnualInflationPct,
		Rng:                 newRng(),
	})
	if err != nil {
		return err
	}
	util.Pprint(result)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	benchmarks, err := loadBenchmarks()
	if err != nil {
		return err
	}
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	comparator := simulation.NewComparator(catalog, benchmarks.Market, logger.New())
	result, err := comparator.Compare(initialAmount, monthlyContribution, horizonMonths, newRng())
	if err != nil {
		return err
	}
	util.Pprint(result)
	return nil
}

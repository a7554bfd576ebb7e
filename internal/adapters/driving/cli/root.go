// Package cli implements the lumen diagnostic command line interface.
//
// The CLI is a thin driving adapter: each command resolves a record or
// passage through the sqlite store, invokes one core service and renders
// the result as a table or JSON. Services are held in package variables so
// tests can substitute memory-backed doubles.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/versewell/lumen/internal/adapters/driven/config/file"
	labelfile "github.com/versewell/lumen/internal/adapters/driven/labels/file"
	"github.com/versewell/lumen/internal/adapters/driven/storage/memory"
	"github.com/versewell/lumen/internal/adapters/driven/storage/sqlite"
	"github.com/versewell/lumen/internal/core/domain"
	"github.com/versewell/lumen/internal/core/ports/driven"
	"github.com/versewell/lumen/internal/core/ports/driving"
	"github.com/versewell/lumen/internal/core/services"
	"github.com/versewell/lumen/internal/logger"
)

var (
	dbDir      string
	configPath string
	labelsPath string
	verbose    bool

	version = "dev"

	store            *sqlite.Store
	catalogStore     driven.CatalogStore
	gateService      driving.QualityEvaluator
	resolverService  driving.RelationshipResolver
	navigatorService driving.Navigator
	intelService     driving.IntelProvider
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Content intelligence and publish-gate engine",
	Long: `Lumen evaluates catalog records against the publish quality gate,
resolves related-link graphs, groups records into categories and reports
semantic passage intelligence.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if store != nil {
			store.Close() //nolint:errcheck
			store = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDir, "db", "", "data directory (default ~/.lumen/data)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "engine config TOML file")
	rootCmd.PersistentFlags().StringVar(&labelsPath, "labels", "", "category label override TOML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// ensureServices wires the core services over the sqlite store. Tests
// bypass this by pre-populating the service variables.
func ensureServices() error {
	if gateService != nil && resolverService != nil &&
		navigatorService != nil && intelService != nil && catalogStore != nil {
		return nil
	}

	cfg, err := configfile.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err = sqlite.NewStore(dbDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	var labels driven.LabelSource
	if labelsPath != "" {
		source, err := labelfile.NewLabelSource(labelsPath)
		if err != nil {
			return fmt.Errorf("loading labels: %w", err)
		}
		labels = source
	}

	catalog := store.CatalogStore()
	catalogStore = catalog
	gateService = services.NewQualityGate(cfg.SiteHost)
	resolverService = services.NewResolver(catalog)
	navigatorService = services.NewNavigationService(catalog, labels)
	intelService = services.NewIntelService(
		store.PassageStore(),
		store.EmbeddingStore(),
		memory.NewIntelCache(),
		services.IntelConfig{
			TTL:           cfg.CacheTTL,
			CandidatePool: cfg.CandidatePool,
			TopK:          cfg.TopK,
		},
	)
	return nil
}

// parseEntityType validates a CLI entity type argument.
func parseEntityType(arg string) (domain.EntityType, error) {
	entityType := domain.EntityType(arg)
	if !entityType.Valid() {
		return "", fmt.Errorf("unknown entity type %q (one of: %s)", arg, entityTypeList())
	}
	return entityType, nil
}

func entityTypeList() string {
	out := ""
	for i, t := range domain.EntityTypes() {
		if i > 0 {
			out += ", "
		}
		out += string(t)
	}
	return out
}

// loadRecord fetches one record through the catalog store.
func loadRecord(cmd *cobra.Command, args []string) (domain.Record, error) {
	entityType, err := parseEntityType(args[0])
	if err != nil {
		return nil, err
	}
	if catalogStore == nil {
		return nil, errors.New("catalog store not configured")
	}

	record, err := catalogStore.GetRecord(cmd.Context(), entityType, args[1])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no %s record with slug %q", entityType, args[1])
		}
		return nil, fmt.Errorf("loading record: %w", err)
	}
	return record, nil
}

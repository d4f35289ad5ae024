package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshuarp/timeshard-api/internal/shared/config"
	shareduid "github.com/joshuarp/timeshard-api/internal/shared/uid"
	"github.com/joshuarp/timeshard-api/internal/timeshard"
)

func provideTimeshardGenerator(cfg config.ConfigProvider, logger *slog.Logger) (*timeshard.Generator, error) {
	nodeBits := cfg.GetInt("timeshard.node_id_bits")
	if nodeBits == 0 {
		nodeBits = timeshard.DefaultNodeBits
	}

	epochMillis := int64(cfg.GetInt("timeshard.custom_epoch_ms"))
	if epochMillis == 0 {
		epochMillis = timeshard.DefaultEpochMillis
	}

	layout, err := timeshard.NewLayout(nodeBits, epochMillis)
	if err != nil {
		return nil, fmt.Errorf("app: invalid timeshard layout: %w", err)
	}

	var nodeID int64
	if cfg.IsSet("timeshard.node_id") {
		nodeID = int64(cfg.GetInt("timeshard.node_id"))
	} else {
		// Unique node ids across processes are the deployer's problem;
		// IP derivation only helps in pod-per-IP setups.
		derived, deriveErr := timeshard.DeriveNodeID(layout)
		if deriveErr != nil {
			logger.Warn("failed to derive node id from interface addresses, using node id 0",
				"error", deriveErr)
		}
		nodeID = derived
	}

	generator, err := timeshard.New(timeshard.Options{
		NodeID:      nodeID,
		NodeBits:    nodeBits,
		EpochMillis: epochMillis,
	})
	if err != nil {
		return nil, fmt.Errorf("app: failed to build id generator: %w", err)
	}

	logger.Info("id generator ready",
		"node_id", nodeID,
		"node_id_bits", nodeBits,
		"sequence_bits", generator.Layout().SequenceBits(),
		"custom_epoch_ms", epochMillis,
	)

	return generator, nil
}

func provideUIDGenerator(cfg config.ConfigProvider, generator *timeshard.Generator) (shareduid.UIDGenerator, error) {
	strategy := shareduid.Strategy(strings.TrimSpace(strings.ToLower(cfg.GetString("uid.strategy"))))
	if strategy == "" {
		strategy = shareduid.StrategyTimeshard
	}

	uidGenerator, err := shareduid.New(shareduid.Options{
		Strategy:  strategy,
		Generator: generator,
	})
	if err != nil {
		return nil, fmt.Errorf("app: failed to init uid generator: %w", err)
	}

	return uidGenerator, nil
}

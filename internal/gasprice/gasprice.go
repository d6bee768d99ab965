package gasprice

import (
	"context"
	"math/big"
	"time"

	"github.com/Solmidey/base-gas-coach/internal/logger"

	"github.com/dgraph-io/ristretto"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Status buckets for the current fee environment, thresholds in gwei.
// Tuned for Base, where sub-0.1 gwei is routine.
const (
	StatusGreen  = "green"
	StatusYellow = "yellow"
	StatusRed    = "red"

	greenMaxGwei  = 0.05
	yellowMaxGwei = 0.15
)

const (
	snapshotCacheKey = "gas-snapshot"
	snapshotTTL      = 25 * time.Second
)

// Snapshot is the current gas price picture plus coaching context.
type Snapshot struct {
	GasPriceWei        string   `json:"gasPriceWei"`
	BaseFeeWei         string   `json:"baseFeeWei,omitempty"`
	GasPriceGwei       float64  `json:"gasPriceGwei"`
	Status             string   `json:"status"`
	RecommendedActions []string `json:"recommendedActions"`
	UpdatedAt          int64    `json:"updatedAt"`
}

// chainReader is the slice of ethclient.Client the service uses.
type chainReader interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Service reads the live gas price over RPC and caches the snapshot
// briefly so a busy frontend does not hammer the node.
type Service struct {
	chain chainReader
	cache *ristretto.Cache
}

// NewService dials the RPC endpoint and prepares the snapshot cache.
func NewService(ctx context.Context, rpcURL string) (*Service, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial Base RPC")
	}
	return newService(client)
}

func newService(chain chainReader) (*Service, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 64,
		MaxCost:     16,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gas snapshot cache")
	}
	return &Service{chain: chain, cache: cache}, nil
}

// Current returns the gas snapshot, served from cache within the TTL.
func (s *Service) Current(ctx context.Context) (Snapshot, error) {
	if cached, ok := s.cache.Get(snapshotCacheKey); ok {
		if snap, ok := cached.(Snapshot); ok {
			return snap, nil
		}
	}

	gasPrice, err := s.chain.SuggestGasPrice(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "failed to read gas price")
	}

	snap := Snapshot{
		GasPriceWei:  gasPrice.String(),
		GasPriceGwei: weiToGwei(gasPrice),
		UpdatedAt:    time.Now().Unix(),
	}
	snap.Status = statusFor(snap.GasPriceGwei)
	snap.RecommendedActions = recommendedActions(snap.Status)

	// Base fee is best-effort; pre-1559 responses simply omit it.
	if header, err := s.chain.HeaderByNumber(ctx, nil); err == nil && header.BaseFee != nil {
		snap.BaseFeeWei = header.BaseFee.String()
	} else if err != nil {
		logger.Debug("base fee lookup skipped", zap.Error(err))
	}

	s.cache.SetWithTTL(snapshotCacheKey, snap, 1, snapshotTTL)
	s.cache.Wait()

	return snap, nil
}

func weiToGwei(wei *big.Int) float64 {
	f := new(big.Float).SetInt(wei)
	f.Quo(f, big.NewFloat(1e9))
	gwei, _ := f.Float64()
	return gwei
}

func statusFor(gwei float64) string {
	switch {
	case gwei <= greenMaxGwei:
		return StatusGreen
	case gwei <= yellowMaxGwei:
		return StatusYellow
	default:
		return StatusRed
	}
}

func recommendedActions(status string) []string {
	switch status {
	case StatusGreen:
		return []string{
			"Great time for multi-step actions, swaps, and mints.",
			"Batch your setup: bridge, swap, and mint in one session.",
			"Try Base-native LPs with small test positions.",
		}
	case StatusYellow:
		return []string{
			"Transfers and small actions are fine.",
			"Keep swap size modest and slippage intentional.",
			"Explore LPs only if you understand impermanent loss.",
		}
	default:
		return []string{
			"Delay non-urgent swaps and mints.",
			"If you must act, prefer simple transfers.",
			"Avoid adding new LP positions during higher fee windows.",
		}
	}
}

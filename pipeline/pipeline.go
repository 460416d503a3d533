package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/genopca/cluster"
	"github.com/katalvlaran/genopca/covariance"
	"github.com/katalvlaran/genopca/genotype"
	"github.com/katalvlaran/genopca/matrix"
	"github.com/katalvlaran/genopca/metrics"
	"github.com/katalvlaran/genopca/power"
)

// Analyzer runs genotype analyses with shared logging, metrics and cache.
type Analyzer struct {
	logger   zerolog.Logger
	recorder *metrics.Recorder // nil ⇒ metrics off
	cache    *psiCache         // nil ⇒ cache off
	covOpts  covariance.Options
	powOpts  power.Options
}

// Result is the outcome of one Analyze call.
type Result struct {
	// Covariance is psi, owned by the caller.
	Covariance *matrix.Dense

	// Stats describes the marker filtering behind Covariance.
	Stats *covariance.Stats

	// Components holds the extracted eigenpairs in decreasing order.
	Components *power.Result

	// Cached reports whether Covariance came from the cache.
	Cached bool
}

// New builds an Analyzer from opts.
//
// Errors:
//   - ErrInvalidOption for nonsensical option values.
//   - Prometheus registration errors from WithRegisterer.
func New(opts ...Option) (*Analyzer, error) {
	cfg, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		logger:  cfg.logger.With().Str("module", "pipeline").Logger(),
		covOpts: cfg.covariance,
		powOpts: cfg.power,
	}
	if a.cache, err = newPsiCache(cfg.cacheSize); err != nil {
		return nil, fmt.Errorf("pipeline: cache: %w", err)
	}
	if cfg.registerer != nil {
		if a.recorder, err = metrics.NewRecorder(cfg.registerer); err != nil {
			return nil, fmt.Errorf("pipeline: metrics: %w", err)
		}
	}
	if init := a.powOpts.Initializer; init != nil {
		if _, ok := init.(power.Forker); !ok {
			a.powOpts.Initializer = &lockedInitializer{next: init}
		}
	}
	a.powOpts.Logger = a.logger
	a.powOpts.Observer = nil
	if a.recorder != nil {
		a.powOpts.Observer = a.recorder
	}

	return a, nil
}

// Analyze builds psi for g (or reuses a cached build) and extracts the
// configured number of components.
//
// When g has fewer samples than the configured count, the count is lowered
// to the number of samples and a warning is logged. Components that hit the
// iteration cap are returned normally; inspect Result.Components.Warnings().
func (a *Analyzer) Analyze(ctx context.Context, g *genotype.Matrix) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("pipeline: %w", covariance.ErrNilGenotypes)
	}
	started := time.Now()

	psi, stats, cached, err := a.buildCovariance(g)
	if err != nil {
		return nil, err
	}

	opts := a.powOpts
	if f, ok := opts.Initializer.(power.Forker); ok {
		opts.Initializer = f.Fork()
	}
	if n := psi.Rows(); opts.Count > n {
		a.logger.Warn().
			Int("requested", opts.Count).
			Int("samples", n).
			Msg("fewer samples than requested components")
		opts.Count = n
	}
	comps, err := power.TopComponentsContext(ctx, psi, opts)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	for i, c := range comps.Components {
		a.logger.Info().
			Int("component", i+1).
			Int("iterations", c.Iterations).
			Bool("converged", c.Converged).
			Float64("eigenvalue", c.Eigenvalue).
			Msg("component extracted")
	}
	if warn := comps.Warnings(); warn != nil {
		a.logger.Warn().Err(warn).Msg("some components did not converge")
	}
	a.logger.Info().
		Int("markers", g.Markers()).
		Int("samples", g.Samples()).
		Int("kept", stats.Divisor()).
		Int("components", len(comps.Components)).
		Bool("cached", cached).
		Bool("converged", comps.Converged()).
		Dur("elapsed", time.Since(started)).
		Msg("analysis complete")

	return &Result{Covariance: psi, Stats: stats, Components: comps, Cached: cached}, nil
}

// lockedInitializer serializes Init calls on an initializer that cannot fork.
type lockedInitializer struct {
	mu   sync.Mutex
	next power.Initializer
}

func (l *lockedInitializer) Init(n int) ([]float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.next.Init(n)
}

// buildCovariance returns a caller-owned psi for g, from the cache when possible.
func (a *Analyzer) buildCovariance(g *genotype.Matrix) (*matrix.Dense, *covariance.Stats, bool, error) {
	key := cacheKey{
		fingerprint: g.Fingerprint(),
		markers:     g.Markers(),
		samples:     g.Samples(),
		policy:      a.covOpts.MissingRows,
	}
	if a.cache != nil {
		psi, stats, ok := a.cache.get(key)
		a.recorder.ObserveCacheLookup(ok)
		if ok {
			a.logger.Debug().Uint64("fingerprint", key.fingerprint).Msg("covariance cache hit")
			return psi, stats, true, nil
		}
	}

	psi, stats, err := covariance.Build(g, a.covOpts)
	if err != nil {
		return nil, nil, false, fmt.Errorf("pipeline: %w", err)
	}
	a.recorder.ObserveCovariance(stats)
	a.logger.Debug().
		Int("kept", stats.Divisor()).
		Int("monomorphic", stats.Monomorphic).
		Int("all_missing", stats.AllMissing).
		Msg("covariance built")

	if err = a.cache.add(key, psi, stats); err != nil {
		return nil, nil, false, fmt.Errorf("pipeline: cache: %w", err)
	}

	return psi, stats, false, nil
}

// Separation scores PC1/PC2 of res with cluster.Score.
func (a *Analyzer) Separation(res *Result, clusterCount, blockSize int) (*cluster.Report, error) {
	if res == nil || res.Components == nil {
		return nil, fmt.Errorf("pipeline: Separation: %w", power.ErrInvalidCount)
	}
	pc1, err := res.Components.PC(1)
	if err != nil {
		return nil, fmt.Errorf("pipeline: Separation: %w", err)
	}
	pc2, err := res.Components.PC(2)
	if err != nil {
		return nil, fmt.Errorf("pipeline: Separation: %w", err)
	}

	report, err := cluster.Score(pc1, pc2, clusterCount, blockSize)
	if err != nil {
		return nil, fmt.Errorf("pipeline: Separation: %w", err)
	}
	for i, r := range report.Ratios {
		a.logger.Info().Int("cluster", i).Float64("ratio", r).Msg("cluster separation")
	}

	return report, nil
}

// CachedCovariances reports how many builds the cache currently holds.
func (a *Analyzer) CachedCovariances() int { return a.cache.len() }

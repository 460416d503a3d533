package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/genopca/covariance"
	"github.com/katalvlaran/genopca/power"
)

// DefaultCacheSize is the number of covariance matrices kept by default.
const DefaultCacheSize = 16

// Option configures an Analyzer. Options apply in order; later ones win.
type Option func(*config) error

type config struct {
	logger     zerolog.Logger
	registerer prometheus.Registerer // nil ⇒ no metrics
	cacheSize  int                   // 0 ⇒ no cache
	covariance covariance.Options
	power      power.Options
}

func defaultConfig() config {
	return config{
		logger:     zerolog.Nop(),
		cacheSize:  DefaultCacheSize,
		covariance: covariance.DefaultOptions(),
		power:      power.DefaultOptions(),
	}
}

// gatherOptions applies opts over the defaults and checks the result.
func gatherOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	p := cfg.power
	if p.Count < 1 || !(p.Tolerance > 0) || math.IsInf(p.Tolerance, 0) || p.MaxIterations < 1 || p.Timeout < 0 {
		return config{}, fmt.Errorf("power options %+v: %w", p, ErrInvalidOption)
	}

	return cfg, nil
}

// WithLogger sets the logger for pipeline and solver events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithRegisterer enables metrics on reg. Without it no metrics are recorded.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) error {
		if reg == nil {
			return fmt.Errorf("WithRegisterer(nil): %w", ErrInvalidOption)
		}
		c.registerer = reg
		return nil
	}
}

// WithCacheSize sets how many covariance matrices are cached; 0 disables the cache.
func WithCacheSize(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("WithCacheSize(%d): %w", n, ErrInvalidOption)
		}
		c.cacheSize = n
		return nil
	}
}

// WithCovarianceOptions replaces the covariance build options.
func WithCovarianceOptions(o covariance.Options) Option {
	return func(c *config) error {
		switch o.MissingRows {
		case covariance.RejectMissingRows, covariance.DropMissingRows, covariance.ZeroFillMissingRows:
		default:
			return fmt.Errorf("WithCovarianceOptions(%v): %w", o.MissingRows, ErrInvalidOption)
		}
		c.covariance = o
		return nil
	}
}

// WithPowerOptions replaces the solver options. Logger and Observer are
// overridden by the Analyzer.
//
// An Initializer implementing power.Forker (such as *power.RandomInitializer)
// is forked at the start of every Analyze call, so each call sees the same
// start vectors. Any other Initializer is shared by all calls behind a mutex
// and should be stateless for results to repeat.
func WithPowerOptions(o power.Options) Option {
	return func(c *config) error {
		c.power = o
		return nil
	}
}

// WithComponents sets how many principal components to extract.
func WithComponents(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("WithComponents(%d): %w", n, ErrInvalidOption)
		}
		c.power.Count = n
		return nil
	}
}

// WithSeed sets the solver seed (0 ⇒ fixed default seed).
func WithSeed(seed int64) Option {
	return func(c *config) error {
		c.power.Seed = seed
		return nil
	}
}

// WithTimeout bounds the whole component extraction of one Analyze call; 0 means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("WithTimeout(%v): %w", d, ErrInvalidOption)
		}
		c.power.Timeout = d
		return nil
	}
}

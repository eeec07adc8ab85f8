package analyze

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alias1177/cryptosignals/internal/pools"
)

const (
	DefaultMoversSampleSize = 5
	DefaultEchoLimit        = 200
)

// Operation names a generator for error reporting.
type Operation string

const (
	OpIdea   Operation = "generate trading idea"
	OpMarket Operation = "analyze market"
	OpPhoto  Operation = "analyze photo"
	OpText   Operation = "analyze text"
)

// ErrGeneration matches every *GenerationError via errors.Is.
var ErrGeneration = errors.New("generation failed")

// GenerationError is returned when a generator cannot produce its record.
type GenerationError struct {
	Op  Operation
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

// Options configures an Analyzer. Zero values fall back to production defaults.
type Options struct {
	Pools            *pools.Pools
	Rand             Rand
	Now              func() time.Time
	Location         *time.Location
	MoversSampleSize int
	EchoLimit        int
	Logger           *zerolog.Logger
}

// Analyzer generates synthetic trading content. It holds no mutable state and
// is safe for concurrent use as long as its Rand is.
type Analyzer struct {
	pools        *pools.Pools
	rand         Rand
	now          func() time.Time
	loc          *time.Location
	moversSample int
	echoLimit    int
	logger       zerolog.Logger
}

// New validates the option pools against the configured limits and returns a
// ready Analyzer. A validation error is a configuration bug and should stop
// the process.
func New(opts Options) (*Analyzer, error) {
	if opts.Pools == nil {
		opts.Pools = pools.Default()
	}
	if opts.Rand == nil {
		opts.Rand = GlobalRand()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MoversSampleSize == 0 {
		opts.MoversSampleSize = DefaultMoversSampleSize
	}
	if opts.EchoLimit == 0 {
		opts.EchoLimit = DefaultEchoLimit
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	if opts.EchoLimit < 0 {
		return nil, fmt.Errorf("echo limit must be positive, got %d", opts.EchoLimit)
	}

	if err := opts.Pools.Validate(opts.MoversSampleSize); err != nil {
		return nil, err
	}

	return &Analyzer{
		pools:        opts.Pools,
		rand:         opts.Rand,
		now:          opts.Now,
		loc:          opts.Location,
		moversSample: opts.MoversSampleSize,
		echoLimit:    opts.EchoLimit,
		logger:       opts.Logger.With().Str("component", "analyzer").Logger(),
	}, nil
}

func (a *Analyzer) timestamp() time.Time {
	return a.now().In(a.loc)
}

func (a *Analyzer) fail(op Operation, err error) error {
	a.logger.Error().Err(err).Str("op", string(op)).Msg("Generation failed")
	return &GenerationError{Op: op, Err: err}
}

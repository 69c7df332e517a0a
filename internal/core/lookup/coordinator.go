package lookup

import (
	"context"
	"sync"

	"foodscan/internal/core/barcode"
	perr "foodscan/internal/platform/errors"
	"foodscan/internal/platform/logger"
)

// Phase is the coordinator's current position in the lookup workflow
type Phase uint8

// Workflow phases. Terminal phases are re-entrant: any of them accepts a
// new submission, transitioning back through PhaseLoading
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseFound
	PhaseNotFound
	PhaseError
)

// String implements fmt.Stringer for logs and wire payloads
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseFound:
		return "found"
	case PhaseNotFound:
		return "not_found"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// User-visible messages owned by the workflow, not by presentation
const (
	MsgEmptyInput = "Please enter a barcode number"
	MsgNotFound   = "Product not found"
	MsgFetchError = "Error fetching product information"
)

// Snapshot is an immutable view of the coordinator state
type Snapshot struct {
	Phase   Phase
	Barcode string
	Product *ProductRecord
	Message string

	// Token identifies the submission that produced this state.
	// Monotonically increasing per begin
	Token uint64
}

// Coordinator is the central state machine of the lookup workflow.
// Safe for concurrent use; the camera decode path and the manual entry
// path may race and each begin is tagged with a token so a stale
// resolution never overwrites a newer submission (last issued wins)
type Coordinator struct {
	mu       sync.Mutex
	fetch    Fetcher
	state    Snapshot
	seq      uint64
	onChange func(Snapshot)
	log      logger.Logger
}

// New constructs a Coordinator in PhaseIdle
func New(f Fetcher) *Coordinator {
	if f == nil {
		panic("lookup.Coordinator requires a non nil Fetcher")
	}
	return &Coordinator{
		fetch: f,
		state: Snapshot{Phase: PhaseIdle},
		log:   *logger.Named("lookup"),
	}
}

// OnChange registers a single observer invoked after every transition.
// The callback runs outside the coordinator lock
func (c *Coordinator) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns the current snapshot
func (c *Coordinator) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SubmitManual validates typed input and begins a lookup.
// Empty input (after normalization) keeps the current state untouched and
// returns a validation error carrying MsgEmptyInput
func (c *Coordinator) SubmitManual(ctx context.Context, text string) (Snapshot, error) {
	code := barcode.Normalize(text)
	if code == "" {
		c.log.Debug().Msg("manual submit rejected: empty input")
		return c.State(), perr.WithField(perr.Validationf("%s", MsgEmptyInput), "barcode")
	}
	return c.begin(ctx, code), nil
}

// SubmitFromCapture begins a lookup for a decoded code.
// Decoder output is non-empty by construction so no validation applies
func (c *Coordinator) SubmitFromCapture(ctx context.Context, code string) Snapshot {
	return c.begin(ctx, barcode.Normalize(code))
}

// begin is the single convergence point for both entry points
func (c *Coordinator) begin(ctx context.Context, code string) Snapshot {
	c.mu.Lock()
	c.seq++
	token := c.seq
	loading := Snapshot{Phase: PhaseLoading, Barcode: code, Token: token}
	c.state = loading
	notify := c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(loading)
	}
	c.log.Debug().Str("barcode", code).Uint64("token", token).Msg("lookup started")

	rec, err := c.fetch.FetchProduct(ctx, code)

	c.mu.Lock()
	if token != c.seq {
		// a newer submission took over while this one was in flight
		cur := c.state
		c.mu.Unlock()
		c.log.Debug().Str("barcode", code).Uint64("token", token).Msg("stale lookup result discarded")
		return cur
	}

	next := Snapshot{Barcode: code, Token: token}
	switch {
	case err == nil:
		next.Phase = PhaseFound
		next.Product = rec
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		next.Phase = PhaseNotFound
		next.Message = MsgNotFound
	default:
		next.Phase = PhaseError
		next.Message = MsgFetchError
	}
	c.state = next
	notify = c.onChange
	c.mu.Unlock()

	if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		c.log.Warn().Err(err).Str("barcode", code).Msg("lookup failed")
	}
	if notify != nil {
		notify(next)
	}
	return next
}

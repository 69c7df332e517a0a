package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "foodscan/internal/platform/errors"
)

type fetchFunc func(ctx context.Context, code string) (*ProductRecord, error)

func (f fetchFunc) FetchProduct(ctx context.Context, code string) (*ProductRecord, error) {
	return f(ctx, code)
}

func fptr(v float64) *float64 { return &v }

func TestNewRequiresFetcher(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("New(nil) did not panic")
		}
	}()
	New(nil)
}

func TestInitialStateIsIdle(t *testing.T) {
	c := New(fetchFunc(func(context.Context, string) (*ProductRecord, error) { return nil, nil }))
	s := c.State()
	if s.Phase != PhaseIdle || s.Product != nil || s.Message != "" {
		t.Fatalf("initial state = %+v", s)
	}
}

func TestSubmitManualEmptyInputNoTransition(t *testing.T) {
	calls := 0
	c := New(fetchFunc(func(context.Context, string) (*ProductRecord, error) {
		calls++
		return &ProductRecord{Name: "x"}, nil
	}))

	for _, in := range []string{"", "   ", "\t\n", "‍"} {
		before := c.State()
		got, err := c.SubmitManual(context.Background(), in)
		if err == nil {
			t.Fatalf("SubmitManual(%q) err = nil", in)
		}
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("SubmitManual(%q) code = %v", in, perr.CodeOf(err))
		}
		if err.Error() != MsgEmptyInput {
			t.Fatalf("SubmitManual(%q) message = %q", in, err.Error())
		}
		if got != before {
			t.Fatalf("SubmitManual(%q) transitioned: %+v -> %+v", in, before, got)
		}
	}
	if calls != 0 {
		t.Fatalf("fetcher called %d times for empty input", calls)
	}
}

func TestSubmitManualFound(t *testing.T) {
	c := New(fetchFunc(func(_ context.Context, code string) (*ProductRecord, error) {
		if code != "3017620422003" {
			t.Fatalf("fetcher got code %q", code)
		}
		return &ProductRecord{
			Barcode:   code,
			Name:      "Nutella",
			Brands:    "Ferrero",
			Nutrients: Nutrients{EnergyKcal: fptr(539)},
		}, nil
	}))

	s, err := c.SubmitManual(context.Background(), " 3017620422003 ")
	if err != nil {
		t.Fatalf("SubmitManual err = %v", err)
	}
	if s.Phase != PhaseFound {
		t.Fatalf("phase = %v", s.Phase)
	}
	if s.Product == nil || s.Product.Name != "Nutella" {
		t.Fatalf("product = %+v", s.Product)
	}
	if s.Product.Nutrients.EnergyKcal == nil || *s.Product.Nutrients.EnergyKcal != 539 {
		t.Fatalf("energy = %v", s.Product.Nutrients.EnergyKcal)
	}
	if s.Message != "" {
		t.Fatalf("found state carries message %q", s.Message)
	}
}

func TestSubmitManualNotFound(t *testing.T) {
	c := New(fetchFunc(func(_ context.Context, code string) (*ProductRecord, error) {
		return nil, perr.NotFoundf("no product for %s", code)
	}))

	s, err := c.SubmitManual(context.Background(), "0000000000000")
	if err != nil {
		t.Fatalf("SubmitManual err = %v", err)
	}
	if s.Phase != PhaseNotFound {
		t.Fatalf("phase = %v", s.Phase)
	}
	if s.Message != MsgNotFound {
		t.Fatalf("message = %q", s.Message)
	}
	if s.Product != nil {
		t.Fatalf("not found state carries product")
	}
}

func TestSubmitManualTransportError(t *testing.T) {
	failures := []error{
		perr.Upstreamf("connection refused"),
		perr.Upstreamf("status 500"),
		perr.Upstreamf("invalid JSON"),
		errors.New("unclassified"), // foreign errors collapse to the same outcome
	}
	for _, ferr := range failures {
		c := New(fetchFunc(func(context.Context, string) (*ProductRecord, error) {
			return nil, ferr
		}))
		s, err := c.SubmitManual(context.Background(), "123")
		if err != nil {
			t.Fatalf("SubmitManual err = %v", err)
		}
		if s.Phase != PhaseError {
			t.Fatalf("phase for %v = %v", ferr, s.Phase)
		}
		if s.Message != MsgFetchError {
			t.Fatalf("message for %v = %q", ferr, s.Message)
		}
	}
}

func TestSubmitFromCapture(t *testing.T) {
	var got string
	c := New(fetchFunc(func(_ context.Context, code string) (*ProductRecord, error) {
		got = code
		return &ProductRecord{Barcode: code, Name: "p"}, nil
	}))

	s := c.SubmitFromCapture(context.Background(), "4008400202037")
	if got != "4008400202037" {
		t.Fatalf("fetcher got %q", got)
	}
	if s.Phase != PhaseFound {
		t.Fatalf("phase = %v", s.Phase)
	}
}

func TestTerminalStatesAreReentrant(t *testing.T) {
	step := 0
	c := New(fetchFunc(func(context.Context, string) (*ProductRecord, error) {
		step++
		switch step {
		case 1:
			return nil, perr.NotFoundf("nope")
		case 2:
			return nil, perr.Upstreamf("down")
		default:
			return &ProductRecord{Name: "ok"}, nil
		}
	}))

	ctx := context.Background()
	if s, _ := c.SubmitManual(ctx, "1"); s.Phase != PhaseNotFound {
		t.Fatalf("step 1 phase = %v", s.Phase)
	}
	if s, _ := c.SubmitManual(ctx, "2"); s.Phase != PhaseError {
		t.Fatalf("step 2 phase = %v", s.Phase)
	}
	s, _ := c.SubmitManual(ctx, "3")
	if s.Phase != PhaseFound || s.Product == nil {
		t.Fatalf("step 3 state = %+v", s)
	}
	// previous error message fully cleared
	if s.Message != "" {
		t.Fatalf("stale message %q", s.Message)
	}
}

func TestOnChangeSeesLoadingThenTerminal(t *testing.T) {
	c := New(fetchFunc(func(context.Context, string) (*ProductRecord, error) {
		return &ProductRecord{Name: "p"}, nil
	}))

	var phases []Phase
	c.OnChange(func(s Snapshot) { phases = append(phases, s.Phase) })

	if _, err := c.SubmitManual(context.Background(), "123"); err != nil {
		t.Fatalf("SubmitManual err = %v", err)
	}
	if len(phases) != 2 || phases[0] != PhaseLoading || phases[1] != PhaseFound {
		t.Fatalf("observed phases = %v", phases)
	}
}

// Two overlapping submissions: the first issued resolves last. With request
// tokens the stale resolution is discarded, so the final state belongs to
// the last submission issued
func TestOverlappingLookupsLastIssuedWins(t *testing.T) {
	block := make(chan struct{})
	c := New(fetchFunc(func(_ context.Context, code string) (*ProductRecord, error) {
		if code == "first" {
			<-block // hold the first lookup until the second resolved
		}
		return &ProductRecord{Barcode: code, Name: code}, nil
	}))

	firstDone := make(chan Snapshot, 1)
	go func() {
		s, _ := c.SubmitManual(context.Background(), "first")
		firstDone <- s
	}()

	// wait for the first submission to reach Loading
	deadline := time.After(2 * time.Second)
	for c.State().Barcode != "first" {
		select {
		case <-deadline:
			t.Fatalf("first submission never reached loading")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	second, _ := c.SubmitManual(context.Background(), "second")
	if second.Phase != PhaseFound || second.Barcode != "second" {
		t.Fatalf("second result = %+v", second)
	}

	close(block)
	got := <-firstDone

	// the first submission observes the newer state, not its own result
	if got.Barcode != "second" {
		t.Fatalf("stale submission returned %+v", got)
	}
	final := c.State()
	if final.Phase != PhaseFound || final.Barcode != "second" {
		t.Fatalf("final state = %+v", final)
	}
	if final.Product == nil || final.Product.Name != "second" {
		t.Fatalf("final product = %+v", final.Product)
	}
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		PhaseIdle:     "idle",
		PhaseLoading:  "loading",
		PhaseFound:    "found",
		PhaseNotFound: "not_found",
		PhaseError:    "error",
		Phase(99):     "unknown",
	}
	for p, want := range cases {
		if p.String() != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", p, p.String(), want)
		}
	}
}

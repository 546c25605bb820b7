package interp

import (
	"context"
	"fmt"
	"testing"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/pkg/runtime"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/observability"
)

type fakeSample struct {
	ID       int
	IsOutput bool
	Location float64
}

type fakeEngine struct {
	IngestedPTS    []int64
	IsFirstFlags   []bool
	Locations      []float64
	EndStreamCount int
	CloseCount     int

	IngestErr      error
	InterpolateErr error
	EndStreamErr   error
	InterpolateFn  func(ctx context.Context, location float64) error
}

var _ Engine[*fakeSample] = (*fakeEngine)(nil)

func (e *fakeEngine) String() string {
	return "fake"
}

func (e *fakeEngine) Ingest(ctx context.Context, sample *fakeSample, pts int64, isFirst bool) error {
	if e.IngestErr != nil {
		return e.IngestErr
	}
	e.IngestedPTS = append(e.IngestedPTS, pts)
	e.IsFirstFlags = append(e.IsFirstFlags, isFirst)
	return nil
}

func (e *fakeEngine) InterpolateAt(ctx context.Context, location float64, out *fakeSample) error {
	if e.InterpolateFn != nil {
		if err := e.InterpolateFn(ctx, location); err != nil {
			return err
		}
	}
	if e.InterpolateErr != nil {
		return e.InterpolateErr
	}
	e.Locations = append(e.Locations, location)
	out.Location = location
	return nil
}

func (e *fakeEngine) EndStream(ctx context.Context) error {
	e.EndStreamCount++
	return e.EndStreamErr
}

func (e *fakeEngine) Close(ctx context.Context) error {
	e.CloseCount++
	return nil
}

// fakeAllocator tracks every sample it knows about, so that a test can
// verify each one is released exactly once.
type fakeAllocator struct {
	T            *testing.T
	NextID       int
	AllocErr     error
	Live         map[int]*fakeSample
	ReleaseCount map[int]int
}

var _ Allocator[*fakeSample] = (*fakeAllocator)(nil)

func newFakeAllocator(t *testing.T) *fakeAllocator {
	return &fakeAllocator{
		T:            t,
		Live:         map[int]*fakeSample{},
		ReleaseCount: map[int]int{},
	}
}

func (a *fakeAllocator) NewInput() *fakeSample {
	a.NextID++
	s := &fakeSample{ID: a.NextID}
	a.Live[s.ID] = s
	return s
}

func (a *fakeAllocator) AllocOutput(ctx context.Context, template *fakeSample) (*fakeSample, error) {
	if a.AllocErr != nil {
		return nil, a.AllocErr
	}
	if _, ok := a.Live[template.ID]; !ok {
		a.T.Errorf("the template %d is already released", template.ID)
	}
	s := a.NewInput()
	s.IsOutput = true
	return s, nil
}

func (a *fakeAllocator) Release(ctx context.Context, sample *fakeSample) {
	a.ReleaseCount[sample.ID]++
	if a.ReleaseCount[sample.ID] > 1 {
		a.T.Errorf("sample %d is released %d times", sample.ID, a.ReleaseCount[sample.ID])
	}
	delete(a.Live, sample.ID)
}

type emittedFrame struct {
	Location float64
	PTS      int64
}

type fakeSink struct {
	Allocator *fakeAllocator
	Emitted   []emittedFrame
	RejectAt  int
	RejectErr error
}

var _ Sink[*fakeSample] = (*fakeSink)(nil)

func (s *fakeSink) EmitFrame(ctx context.Context, out *fakeSample, pts int64) error {
	defer s.Allocator.Release(ctx, out)
	if s.RejectErr != nil && len(s.Emitted) == s.RejectAt {
		return s.RejectErr
	}
	s.Emitted = append(s.Emitted, emittedFrame{Location: out.Location, PTS: pts})
	return nil
}

func (s *fakeSink) PTSs() []int64 {
	result := make([]int64, 0, len(s.Emitted))
	for _, f := range s.Emitted {
		result = append(result, f.PTS)
	}
	return result
}

func testCtx(t *testing.T) context.Context {
	l := logrus.Default().WithLevel(logger.LevelTrace)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.SetDefault(func() logger.Logger {
		return l
	})
	t.Cleanup(func() { belt.Flush(ctx) })
	runtime.DefaultCallerPCFilter = observability.CallerPCFilter(runtime.DefaultCallerPCFilter)
	return ctx
}

type testEnv struct {
	Ctx       context.Context
	Engine    *fakeEngine
	Allocator *fakeAllocator
	Sink      *fakeSink
	Scheduler *Scheduler[*fakeSample]
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	ctx := testCtx(t)
	engine := &fakeEngine{}
	allocator := newFakeAllocator(t)
	s, err := New[*fakeSample](ctx, cfg, engine, allocator)
	if err != nil {
		t.Fatalf("unable to create the scheduler: %v", err)
	}
	return &testEnv{
		Ctx:       ctx,
		Engine:    engine,
		Allocator: allocator,
		Sink:      &fakeSink{Allocator: allocator},
		Scheduler: s,
	}
}

func (env *testEnv) Ingest(pts int64) error {
	return env.Scheduler.Ingest(env.Ctx, Anchor[*fakeSample]{
		Sample: env.Allocator.NewInput(),
		PTS:    pts,
	}, env.Sink)
}

func (env *testEnv) AssertNoLeaks(t *testing.T) {
	if len(env.Allocator.Live) != 0 {
		t.Errorf("leaked samples: %s", fmt.Sprint(env.Allocator.Live))
	}
}

package platform_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spaghettifunk/gulag/engine/platform"
	"github.com/spaghettifunk/gulag/engine/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	p, b, _ := platformtest.NewPlatform()

	w, err := p.NewWindow().Build()
	require.NoError(t, err)
	defer w.Destroy()

	require.Len(t, b.Windows, 1)
	native := b.Windows[0]
	assert.Equal(t, platform.DefaultTitle, native.Title)
	assert.Equal(t, 160, native.Width)
	assert.Equal(t, 144, native.Height)
	assert.Equal(t, "GuLag Window", w.Title())
	assert.NotEqual(t, [16]byte{}, [16]byte(w.ID()))

	require.Len(t, b.Hints, 1)
	assert.Equal(t, platform.Hints{
		ContextVersionMajor: 4,
		ContextVersionMinor: 4,
		CoreProfile:         true,
		ForwardCompatible:   true,
		Resizable:           true,
	}, b.Hints[0])
}

func TestBuildHintOrder(t *testing.T) {
	p, b, _ := platformtest.NewPlatform()

	_, err := p.NewWindow().Title("fixed").Resolution(640, 480).Resizable(false).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"SetHints", "CreateWindow", "DefaultHints"}, b.Calls)
	assert.False(t, b.Hints[0].Resizable)
	assert.Equal(t, "fixed", b.Windows[0].Title)
}

func TestBuildLoadsFunctionTableOnce(t *testing.T) {
	p, b, l := platformtest.NewPlatform()
	assert.False(t, p.Loaded())

	first, err := p.NewWindow().Build()
	require.NoError(t, err)
	second, err := p.NewWindow().Title("second").Build()
	require.NoError(t, err)

	assert.Equal(t, 1, l.Loads)
	assert.Equal(t, 1, b.Inits)
	assert.Equal(t, []int{1}, b.Intervals)
	assert.True(t, p.Loaded())
	assert.Same(t, b.Windows[0], b.Current(), "first window made current for the load")

	assert.Same(t, first.Context().Driver(), second.Context().Driver())
	assert.NotSame(t, first.Context(), second.Context())
	assert.NotEqual(t, first.ID(), second.ID())

	// Destroying one window leaves the platform up.
	first.Destroy()
	assert.Zero(t, b.Terminates)
	third, err := p.NewWindow().Build()
	require.NoError(t, err)
	assert.Equal(t, 1, l.Loads)
	third.Destroy()
	second.Destroy()
}

func TestBuildFailures(t *testing.T) {
	t.Run("zero resolution", func(t *testing.T) {
		p, b, _ := platformtest.NewPlatform()
		_, err := p.NewWindow().Resolution(0, 720).Build()
		assert.ErrorIs(t, err, platform.ErrWindowCreation)
		assert.Zero(t, b.Inits)
	})

	t.Run("backend init", func(t *testing.T) {
		p, b, _ := platformtest.NewPlatform()
		b.FailInit = true
		_, err := p.NewWindow().Build()
		assert.ErrorIs(t, err, platform.ErrWindowCreation)
		assert.ErrorIs(t, err, platformtest.ErrInitFailed)
	})

	t.Run("window creation", func(t *testing.T) {
		p, b, l := platformtest.NewPlatform()
		b.FailCreate = errors.New("no display")
		_, err := p.NewWindow().Build()
		assert.ErrorIs(t, err, platform.ErrWindowCreation)
		assert.Equal(t, 1, b.HintResets, "hints are reset even when creation fails")
		assert.Zero(t, l.Loads)
	})

	t.Run("function table", func(t *testing.T) {
		p, b, l := platformtest.NewPlatform()
		l.Err = errors.New("missing glDebugMessageCallback")
		_, err := p.NewWindow().Build()
		assert.ErrorIs(t, err, platform.ErrFunctionTable)
		assert.False(t, p.Loaded())
		require.Len(t, b.Windows, 1)
		assert.True(t, b.Windows[0].Destroyed)
	})
}

func TestWindowFrameOperations(t *testing.T) {
	p, b, l := platformtest.NewPlatform()
	w, err := p.NewWindow().Resolution(1280, 720).Build()
	require.NoError(t, err)
	native := b.Windows[0]

	width, height := w.Size()
	assert.Equal(t, uint32(1280), width)
	assert.Equal(t, uint32(720), height)

	w.Clear()
	assert.Equal(t, [][4]int32{{0, 0, 1280, 720}}, l.Driver.Viewports)

	native.Width, native.Height = -3, 10
	width, height = w.Size()
	assert.Equal(t, uint32(0), width)
	assert.Equal(t, uint32(10), height)

	w.Swap()
	assert.Equal(t, 1, native.Swaps)
	assert.Equal(t, 1, b.Polls, "swap pumps events")

	assert.False(t, w.ShouldClose())
	w.SetShouldClose(true)
	assert.True(t, w.ShouldClose())

	w.Destroy()
	w.Destroy()
	assert.True(t, native.Destroyed)
	assert.True(t, w.ShouldClose())
	w.Swap()
	assert.Equal(t, 1, native.Swaps)
}

func TestWindowEvents(t *testing.T) {
	p, b, _ := platformtest.NewPlatform()
	w, err := p.NewWindow().Build()
	require.NoError(t, err)

	b.Windows[0].Resize(800, 600)
	ev := <-w.Events()
	assert.Equal(t, platform.EventResize, ev.Kind)
	assert.Equal(t, 800, ev.Width)
	assert.Equal(t, 600, ev.Height)
	assert.Equal(t, "resize", ev.Kind.String())
}

func TestTerminate(t *testing.T) {
	p, b, l := platformtest.NewPlatform()

	w, err := p.NewWindow().Build()
	require.NoError(t, err)
	w.Destroy()

	p.Terminate()
	p.Terminate()
	assert.Equal(t, 1, b.Terminates)

	// The function table is loaded at most once per process, so nothing
	// is built on a terminated platform.
	_, err = p.NewWindow().Build()
	assert.ErrorIs(t, err, platform.ErrWindowCreation)
	assert.ErrorIs(t, err, platform.ErrTerminated)
	assert.Equal(t, 1, b.Inits)
	assert.Equal(t, 1, l.Loads)
	assert.True(t, p.Loaded())
}

func TestTerminateBeforeStartup(t *testing.T) {
	p, b, l := platformtest.NewPlatform()
	p.Terminate()
	assert.Zero(t, b.Terminates, "never initialized")

	_, err := p.NewWindow().Build()
	assert.ErrorIs(t, err, platform.ErrTerminated)
	assert.Zero(t, b.Inits)
	assert.Zero(t, l.Loads)
}

func TestBuildConcurrent(t *testing.T) {
	p, b, l := platformtest.NewPlatform()

	const n = 8
	var wg sync.WaitGroup
	windows := make(chan *platform.Window, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := p.NewWindow().Build()
			if err != nil {
				errs <- err
				return
			}
			windows <- w
		}()
	}
	wg.Wait()
	close(windows)
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, l.Loads)
	assert.Equal(t, 1, b.Inits)
	assert.Len(t, b.Windows, n)
	assert.Len(t, b.Calls, 3*n)

	ids := map[[16]byte]bool{}
	for w := range windows {
		assert.Same(t, l.Driver, w.Context().Driver())
		ids[w.ID()] = true
		w.Destroy()
	}
	assert.Len(t, ids, n)
}

func TestWaitEvents(t *testing.T) {
	p, b, _ := platformtest.NewPlatform()
	p.WaitEvents(50 * time.Millisecond)
	assert.Equal(t, []time.Duration{50 * time.Millisecond}, b.Waits)
}

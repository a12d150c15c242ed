package connection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func fastConfig() ManagerConfig {
	return ManagerConfig{
		Backoff: BackoffConfig{
			Initial:    20 * time.Millisecond,
			Max:        80 * time.Millisecond,
			Multiplier: 2.0,
			Jitter:     0,
		},
		ConnectTimeout: time.Second,
	}
}

func waitForState(t *testing.T, m *Manager, want State, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("State() = %v after %v, want %v", m.State(), timeout, want)
}

func TestBackoff(t *testing.T) {
	t.Run("DefaultSequence", func(t *testing.T) {
		b := NewBackoff()

		expected := []time.Duration{
			1 * time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			16 * time.Second,
			32 * time.Second,
			60 * time.Second,
			60 * time.Second, // Should stay at max
		}

		for i, exp := range expected {
			base := b.Current()
			_ = b.Next()

			if base < exp-time.Millisecond || base > exp+time.Millisecond {
				t.Errorf("Attempt %d: base = %v, want %v", i, base, exp)
			}
		}
	})

	t.Run("Jitter", func(t *testing.T) {
		b := NewBackoff()

		samples := make([]time.Duration, 10)
		for i := range samples {
			samples[i] = b.Peek()
		}

		for i, s := range samples {
			if s < 1*time.Second || s > time.Duration(float64(1*time.Second)*1.25)+time.Millisecond {
				t.Errorf("Sample %d: %v out of expected range [1s, 1.25s]", i, s)
			}
		}

		allSame := true
		for i := 1; i < len(samples); i++ {
			if samples[i] != samples[0] {
				allSame = false
				break
			}
		}
		if allSame {
			t.Error("All jittered samples are identical - jitter may not be working")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := NewBackoff()

		for i := 0; i < 5; i++ {
			b.Next()
		}
		if b.Current() <= InitialBackoff {
			t.Error("Backoff should have increased")
		}

		b.Reset()

		if b.Current() != InitialBackoff {
			t.Errorf("Current() = %v after reset, want %v", b.Current(), InitialBackoff)
		}
		if b.Attempts() != 0 {
			t.Errorf("Attempts() = %d after reset, want 0", b.Attempts())
		}
	})

	t.Run("CustomConfig", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{
			Initial:    100 * time.Millisecond,
			Max:        500 * time.Millisecond,
			Multiplier: 2.0,
			Jitter:     0,
		})

		expected := []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
			500 * time.Millisecond, // Max
			500 * time.Millisecond,
		}

		for i, exp := range expected {
			if got := b.Next(); got != exp {
				t.Errorf("Attempt %d: got %v, want %v", i, got, exp)
			}
		}
	})

	t.Run("InvalidConfigFallsBack", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Multiplier: 0.5, Jitter: -1})

		if b.Current() != InitialBackoff {
			t.Errorf("Current() = %v, want %v", b.Current(), InitialBackoff)
		}
		b.Next()
		if b.Current() != 2*InitialBackoff {
			t.Errorf("Current() after Next = %v, want %v", b.Current(), 2*InitialBackoff)
		}
	})
}

func TestManager(t *testing.T) {
	t.Run("InitialState", func(t *testing.T) {
		m := NewManager(func(ctx context.Context) error { return nil })
		defer m.Close()

		if m.State() != StateDisconnected {
			t.Errorf("Initial state = %v, want StateDisconnected", m.State())
		}
		if m.IsConnected() {
			t.Error("IsConnected() = true, want false")
		}
	})

	t.Run("SuccessfulConnect", func(t *testing.T) {
		connectCalled := false
		m := NewManager(func(ctx context.Context) error {
			connectCalled = true
			return nil
		})
		defer m.Close()

		var connectedCalled bool
		m.OnConnected(func() { connectedCalled = true })

		if err := m.Connect(context.Background()); err != nil {
			t.Fatalf("Connect() error = %v", err)
		}

		if !connectCalled {
			t.Error("Connect function was not called")
		}
		if !connectedCalled {
			t.Error("OnConnected callback was not called")
		}
		if m.State() != StateConnected {
			t.Errorf("State() = %v, want StateConnected", m.State())
		}
	})

	t.Run("FailedConnect", func(t *testing.T) {
		expectedErr := errors.New("association rejected")
		m := NewManager(func(ctx context.Context) error { return expectedErr })
		defer m.Close()

		if err := m.Connect(context.Background()); err != expectedErr {
			t.Errorf("Connect() error = %v, want %v", err, expectedErr)
		}
		if m.State() != StateDisconnected {
			t.Errorf("State() = %v, want StateDisconnected", m.State())
		}
	})

	t.Run("TimeoutMapsToErrConnectTimeout", func(t *testing.T) {
		m := NewManager(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		defer m.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		if err := m.Connect(ctx); !errors.Is(err, ErrConnectTimeout) {
			t.Errorf("Connect() error = %v, want ErrConnectTimeout", err)
		}
	})

	t.Run("AlreadyConnected", func(t *testing.T) {
		m := NewManager(func(ctx context.Context) error { return nil })
		defer m.Close()

		m.Connect(context.Background())

		if err := m.Connect(context.Background()); err != ErrAlreadyConnected {
			t.Errorf("Second Connect() error = %v, want ErrAlreadyConnected", err)
		}
	})

	t.Run("ConnectInProgress", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		m := NewManager(func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
		defer m.Close()

		done := make(chan error, 1)
		go func() { done <- m.Connect(context.Background()) }()
		<-started

		if err := m.Connect(context.Background()); err != ErrConnectInProgress {
			t.Errorf("concurrent Connect() error = %v, want ErrConnectInProgress", err)
		}

		close(release)
		if err := <-done; err != nil {
			t.Errorf("first Connect() error = %v", err)
		}
	})

	t.Run("ConnectAfterClose", func(t *testing.T) {
		m := NewManager(func(ctx context.Context) error { return nil })
		m.Close()

		if err := m.Connect(context.Background()); err != ErrManagerClosed {
			t.Errorf("Connect() error = %v, want ErrManagerClosed", err)
		}
	})

	t.Run("Disconnect", func(t *testing.T) {
		m := NewManager(func(ctx context.Context) error { return nil })
		defer m.Close()

		m.Connect(context.Background())

		var disconnectedCalled bool
		m.OnDisconnected(func() { disconnectedCalled = true })

		m.Disconnect()

		if !disconnectedCalled {
			t.Error("OnDisconnected callback was not called")
		}
		if m.State() != StateDisconnected {
			t.Errorf("State() = %v, want StateDisconnected", m.State())
		}
	})

	t.Run("StateChangeCallback", func(t *testing.T) {
		m := NewManager(func(ctx context.Context) error { return nil })
		defer m.Close()

		var transitions []struct{ old, new State }
		m.OnStateChange(func(old, new State) {
			transitions = append(transitions, struct{ old, new State }{old, new})
		})

		m.Connect(context.Background())
		m.Disconnect()

		expected := []struct{ old, new State }{
			{StateDisconnected, StateConnecting},
			{StateConnecting, StateConnected},
			{StateConnected, StateDisconnected},
		}

		if len(transitions) != len(expected) {
			t.Fatalf("Got %d transitions, want %d", len(transitions), len(expected))
		}
		for i, exp := range expected {
			if transitions[i].old != exp.old || transitions[i].new != exp.new {
				t.Errorf("Transition %d: got %v→%v, want %v→%v",
					i, transitions[i].old, transitions[i].new, exp.old, exp.new)
			}
		}
	})
}

func TestManagerReconnect(t *testing.T) {
	t.Run("AutoReconnectOnLinkLoss", func(t *testing.T) {
		var connectCount atomic.Int32
		m := NewManagerWithConfig(func(ctx context.Context) error {
			connectCount.Add(1)
			return nil
		}, fastConfig())
		m.StartReconnectLoop()
		defer m.Close()

		if err := m.Connect(context.Background()); err != nil {
			t.Fatalf("Initial Connect() error = %v", err)
		}

		m.NotifyConnectionLost()
		waitForState(t, m, StateConnected, time.Second)

		if connectCount.Load() < 2 {
			t.Errorf("Connect was only called %d times, want at least 2", connectCount.Load())
		}
	})

	t.Run("BackoffOnFailure", func(t *testing.T) {
		var connectCount atomic.Int32
		var mu sync.Mutex
		var attempts []time.Time

		m := NewManagerWithConfig(func(ctx context.Context) error {
			mu.Lock()
			attempts = append(attempts, time.Now())
			mu.Unlock()

			// Initial connect and the first two retries fail after the link drops.
			switch connectCount.Add(1) {
			case 1:
				return nil
			case 2, 3:
				return errors.New("no beacon")
			default:
				return nil
			}
		}, fastConfig())

		var reconnecting []int
		m.OnReconnecting(func(attempt int, delay time.Duration) {
			mu.Lock()
			reconnecting = append(reconnecting, attempt)
			mu.Unlock()
		})
		m.StartReconnectLoop()
		defer m.Close()

		m.Connect(context.Background())
		m.NotifyConnectionLost()
		waitForState(t, m, StateConnected, 2*time.Second)

		mu.Lock()
		defer mu.Unlock()

		if len(attempts) != 4 {
			t.Fatalf("attempts = %d, want 4", len(attempts))
		}
		if len(reconnecting) != 3 || reconnecting[2] != 3 {
			t.Errorf("reconnecting attempts = %v, want [1 2 3]", reconnecting)
		}
		if d := attempts[2].Sub(attempts[1]); d < 30*time.Millisecond {
			t.Errorf("second retry delay = %v, want >= 40ms backoff", d)
		}
		if m.BackoffAttempts() != 0 {
			t.Errorf("BackoffAttempts() = %d after success, want 0", m.BackoffAttempts())
		}
	})

	t.Run("DisabledAutoReconnect", func(t *testing.T) {
		var connectCount atomic.Int32
		m := NewManagerWithConfig(func(ctx context.Context) error {
			connectCount.Add(1)
			return nil
		}, fastConfig())
		m.SetAutoReconnect(false)
		m.StartReconnectLoop()
		defer m.Close()

		m.Connect(context.Background())
		m.NotifyConnectionLost()

		time.Sleep(100 * time.Millisecond)

		if m.State() != StateDisconnected {
			t.Errorf("State() = %v, want StateDisconnected (no auto-reconnect)", m.State())
		}
		if connectCount.Load() != 1 {
			t.Errorf("Connect called %d times, want 1 (no reconnection)", connectCount.Load())
		}
	})

	t.Run("DisconnectAbandonsReconnect", func(t *testing.T) {
		var connectCount atomic.Int32
		m := NewManagerWithConfig(func(ctx context.Context) error {
			if connectCount.Add(1) == 1 {
				return nil
			}
			return errors.New("no beacon")
		}, fastConfig())
		m.StartReconnectLoop()
		defer m.Close()

		m.Connect(context.Background())
		m.NotifyConnectionLost()
		time.Sleep(50 * time.Millisecond)

		m.Disconnect()
		time.Sleep(20 * time.Millisecond)
		calls := connectCount.Load()

		time.Sleep(200 * time.Millisecond)
		if connectCount.Load() != calls {
			t.Errorf("reconnect continued after Disconnect: %d -> %d calls", calls, connectCount.Load())
		}
		if m.State() != StateDisconnected {
			t.Errorf("State() = %v, want StateDisconnected", m.State())
		}
	})

	t.Run("CloseStopsLoop", func(t *testing.T) {
		m := NewManagerWithConfig(func(ctx context.Context) error {
			return errors.New("no beacon")
		}, fastConfig())
		m.StartReconnectLoop()
		m.StartReconnectLoop() // ignored

		m.mu.Lock()
		m.state = StateConnected
		m.mu.Unlock()
		m.NotifyConnectionLost()

		done := make(chan struct{})
		go func() {
			m.Close()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Close() did not return")
		}
		if m.State() != StateClosed {
			t.Errorf("State() = %v, want StateClosed", m.State())
		}
	})
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "DISCONNECTED"},
		{StateConnecting, "CONNECTING"},
		{StateConnected, "CONNECTED"},
		{StateReconnecting, "RECONNECTING"},
		{StateClosed, "CLOSED"},
		{State(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBackoffSequence(t *testing.T) {
	seq := BackoffSequence()

	if len(seq) != 7 {
		t.Errorf("BackoffSequence() has %d elements, want 7", len(seq))
	}
	if seq[0] != 1*time.Second {
		t.Errorf("First element = %v, want 1s", seq[0])
	}
	if seq[len(seq)-1] != 60*time.Second {
		t.Errorf("Last element = %v, want 60s", seq[len(seq)-1])
	}
}

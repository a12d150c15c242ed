package connection

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Link errors.
var (
	ErrManagerClosed     = errors.New("link manager closed")
	ErrConnectTimeout    = errors.New("link establishment timeout")
	ErrAlreadyConnected  = errors.New("already connected")
	ErrConnectInProgress = errors.New("link establishment in progress")
)

// DefaultConnectTimeout bounds one link establishment attempt.
const DefaultConnectTimeout = 30 * time.Second

// State represents the link state.
type State uint8

const (
	// StateDisconnected indicates no link.
	StateDisconnected State = iota

	// StateConnecting indicates a link establishment is in progress.
	StateConnecting

	// StateConnected indicates an established link.
	StateConnected

	// StateReconnecting indicates automatic re-establishment after link loss.
	StateReconnecting

	// StateClosed indicates the manager has been closed.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// ConnectFunc is called to establish the link.
// It should return nil on success or an error on failure.
type ConnectFunc func(ctx context.Context) error

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Backoff between reconnection attempts.
	Backoff BackoffConfig

	// ConnectTimeout bounds each reconnection attempt.
	ConnectTimeout time.Duration
}

// Manager tracks the lifecycle of one link and re-establishes it after loss.
//
// Callbacks run on the goroutine that caused the change. They must not call
// back into the Manager's mutating methods.
type Manager struct {
	mu sync.RWMutex

	state          State
	backoff        *Backoff
	connectFn      ConnectFunc
	autoReconnect  bool
	connectTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	reconnectCh chan struct{}
	loopStarted bool

	onStateChange  func(oldState, newState State)
	onConnected    func()
	onDisconnected func()
	onReconnecting func(attempt int, delay time.Duration)
}

// NewManager creates a link manager with default settings.
func NewManager(connectFn ConnectFunc) *Manager {
	return NewManagerWithConfig(connectFn, ManagerConfig{Backoff: DefaultBackoffConfig()})
}

// NewManagerWithConfig creates a link manager with custom settings.
func NewManagerWithConfig(connectFn ConnectFunc, cfg ManagerConfig) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	return &Manager{
		state:          StateDisconnected,
		backoff:        NewBackoffWithConfig(cfg.Backoff),
		connectFn:      connectFn,
		autoReconnect:  true,
		connectTimeout: timeout,
		ctx:            ctx,
		cancel:         cancel,
		reconnectCh:    make(chan struct{}, 1),
	}
}

// State returns the current link state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsConnected returns true if the link is up.
func (m *Manager) IsConnected() bool {
	return m.State() == StateConnected
}

// SetAutoReconnect enables or disables automatic reconnection.
func (m *Manager) SetAutoReconnect(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoReconnect = enabled
}

// Connect establishes the link.
//
// A pending reconnection is superseded. Connect fails with
// ErrAlreadyConnected if the link is up and with ErrConnectInProgress if
// another Connect is running.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case StateConnected:
		m.mu.Unlock()
		return ErrAlreadyConnected
	case StateConnecting:
		m.mu.Unlock()
		return ErrConnectInProgress
	case StateClosed:
		m.mu.Unlock()
		return ErrManagerClosed
	}

	oldState := m.state
	m.state = StateConnecting
	m.mu.Unlock()

	m.notifyState(oldState, StateConnecting)

	err := m.connectFn(ctx)

	m.mu.Lock()
	if m.state != StateConnecting {
		// Closed or disconnected while the attempt ran.
		m.mu.Unlock()
		if err == nil {
			return ErrManagerClosed
		}
		return err
	}
	if err != nil {
		m.state = StateDisconnected
		m.mu.Unlock()
		m.notifyState(StateConnecting, StateDisconnected)
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrConnectTimeout
		}
		return err
	}

	m.state = StateConnected
	m.backoff.Reset()
	m.mu.Unlock()

	m.notifyState(StateConnecting, StateConnected)
	if fn := m.connectedCallback(); fn != nil {
		fn()
	}

	return nil
}

// Disconnect tears the link down at the caller's request.
// No reconnection is attempted; a pending reconnection is abandoned.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	if m.state == StateDisconnected || m.state == StateClosed {
		m.mu.Unlock()
		return
	}

	oldState := m.state
	m.state = StateDisconnected
	m.mu.Unlock()

	m.notifyState(oldState, StateDisconnected)
	if oldState == StateConnected {
		if fn := m.disconnectedCallback(); fn != nil {
			fn()
		}
	}
}

// NotifyConnectionLost should be called when link loss is detected.
// This triggers automatic reconnection if enabled.
func (m *Manager) NotifyConnectionLost() {
	m.mu.Lock()
	if m.state != StateConnected {
		m.mu.Unlock()
		return
	}

	oldState := m.state
	autoReconnect := m.autoReconnect

	newState := StateDisconnected
	if autoReconnect {
		newState = StateReconnecting
	}
	m.state = newState
	m.mu.Unlock()

	m.notifyState(oldState, newState)
	if fn := m.disconnectedCallback(); fn != nil {
		fn()
	}

	if autoReconnect {
		m.triggerReconnect()
	}
}

// StartReconnectLoop starts the background reconnection loop.
// It must be called once before reconnection will work; later calls are
// ignored.
func (m *Manager) StartReconnectLoop() {
	m.mu.Lock()
	if m.loopStarted || m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.loopStarted = true
	m.wg.Add(1)
	m.mu.Unlock()

	go m.reconnectLoop()
}

// Close shuts down the manager and waits for the reconnection loop to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}

	oldState := m.state
	m.state = StateClosed
	m.mu.Unlock()

	m.notifyState(oldState, StateClosed)

	m.cancel()
	m.wg.Wait()
}

func (m *Manager) triggerReconnect() {
	select {
	case m.reconnectCh <- struct{}{}:
	default:
		// Already pending
	}
}

func (m *Manager) reconnectLoop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.reconnectCh:
			m.attemptReconnect()
		}
	}
}

// attemptReconnect retries with backoff until the link is up or something
// else takes the manager out of StateReconnecting.
func (m *Manager) attemptReconnect() {
	for {
		if m.State() != StateReconnecting {
			return
		}

		delay := m.backoff.Next()
		attempts := m.backoff.Attempts()

		if fn := m.reconnectingCallback(); fn != nil {
			fn(attempts, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-m.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if m.State() != StateReconnecting {
			return
		}

		ctx, cancel := context.WithTimeout(m.ctx, m.connectTimeout)
		err := m.connectFn(ctx)
		cancel()

		if err != nil {
			continue
		}

		m.mu.Lock()
		if m.state != StateReconnecting {
			m.mu.Unlock()
			return
		}
		m.state = StateConnected
		m.backoff.Reset()
		m.mu.Unlock()

		m.notifyState(StateReconnecting, StateConnected)
		if fn := m.connectedCallback(); fn != nil {
			fn()
		}
		return
	}
}

func (m *Manager) notifyState(oldState, newState State) {
	m.mu.RLock()
	fn := m.onStateChange
	m.mu.RUnlock()

	if fn != nil {
		fn(oldState, newState)
	}
}

func (m *Manager) connectedCallback() func() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.onConnected
}

func (m *Manager) disconnectedCallback() func() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.onDisconnected
}

func (m *Manager) reconnectingCallback() func(int, time.Duration) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.onReconnecting
}

// OnStateChange sets a callback for state changes.
func (m *Manager) OnStateChange(fn func(oldState, newState State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = fn
}

// OnConnected sets a callback for link establishment.
func (m *Manager) OnConnected(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onConnected = fn
}

// OnDisconnected sets a callback for loss or teardown of an established link.
func (m *Manager) OnDisconnected(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDisconnected = fn
}

// OnReconnecting sets a callback for reconnection attempts.
func (m *Manager) OnReconnecting(fn func(attempt int, delay time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReconnecting = fn
}

// BackoffAttempts returns the current number of reconnection attempts.
func (m *Manager) BackoffAttempts() int {
	return m.backoff.Attempts()
}

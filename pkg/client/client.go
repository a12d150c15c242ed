package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/wlanmode/wlanmode-go/pkg/connection"
	"github.com/wlanmode/wlanmode-go/pkg/driver"
	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
	"github.com/wlanmode/wlanmode-go/pkg/netstore"
)

var (
	errNoTarget   = errors.New("no target network")
	errSuperseded = errors.New("connect request superseded")
)

// pendingConnect is a connect request whose listener is not resolved yet.
type pendingConnect struct {
	listener *mode.ListenerWrapper
	network  mode.NetworkConfig
	uid      int
	started  time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Mode is the client operating mode.
type Mode struct {
	id     mode.ID
	radio  driver.Radio
	store  netstore.Store
	prov   mode.Provisioning
	idle   *mode.ScanOnly
	mgr    *connection.Manager
	caps   driver.Capabilities
	hwAddr string

	connectTimeout time.Duration
	commandTimeout time.Duration
	onMessage      func(mode.Message)

	logger  *slog.Logger
	trace   wlanlog.Logger
	verbose atomic.Bool

	// ctx is cancelled by Retire and parents all background work.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// connectMu serializes connect, reassociate and disconnect sequences.
	// radioMu serializes association changes on the radio, including those
	// made by the reconnect loop. Lock order: connectMu, radioMu, mu.
	connectMu sync.Mutex
	radioMu   sync.Mutex

	mu          sync.RWMutex
	retired     bool
	activated   bool
	initial     int
	ws          mode.WorkSource
	gen         uint64
	pending     *pendingConnect
	target      *mode.NetworkConfig
	targetBSSID string
	last        *mode.NetworkConfig
	connected   *mode.NetworkConfig
	assoc       *driver.Association
	roaming     bool
	probing     bool
	dhcp        mode.DHCPResults
	session     int
	scorer      mode.NetworkScorer
	poller      mode.TrafficPoller
	powerSave   bool
	lowLatency  bool
	country     string
	roamingCfg  mode.RoamingConfig
	mboCellular bool
	tdlsPeers   map[string]bool
	multicast   *multicastFilter
	handled     int
	dropped     int
}

var (
	_ mode.Mode      = (*Mode)(nil)
	_ mode.Retirer   = (*Mode)(nil)
	_ mode.Activator = (*Mode)(nil)
)

// New brings the radio up, subscribes to its link events and returns a
// disconnected client mode.
func New(ctx context.Context, cfg Config) (*Mode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = connection.DefaultConnectTimeout
	}
	commandTimeout := cfg.CommandTimeout
	if commandTimeout <= 0 {
		commandTimeout = DefaultCommandTimeout
	}

	idle := mode.NewScanOnly()
	prov := cfg.Provisioner
	if prov == nil {
		prov = idle
	}

	runCtx, cancel := context.WithCancel(context.Background())
	m := &Mode{
		id:             mode.NewID(mode.KindClient),
		radio:          cfg.Radio,
		store:          cfg.Store,
		prov:           prov,
		idle:           idle,
		caps:           cfg.Radio.Capabilities(),
		connectTimeout: connectTimeout,
		commandTimeout: commandTimeout,
		onMessage:      cfg.OnMessage,
		logger:         cfg.Logger,
		trace:          cfg.Trace,
		ctx:            runCtx,
		cancel:         cancel,
		ws:             cfg.WorkSource,
		initial:        cfg.NetworkID,
		tdlsPeers:      make(map[string]bool),
		multicast:      &multicastFilter{},
	}
	if hw := cfg.Radio.HardwareAddr(); hw != nil {
		m.hwAddr = hw.String()
	}

	m.mgr = connection.NewManagerWithConfig(m.associate, connection.ManagerConfig{
		Backoff:        cfg.Backoff,
		ConnectTimeout: connectTimeout,
	})
	m.mgr.OnStateChange(m.onLinkState)
	m.mgr.OnConnected(m.onLinkUp)
	m.mgr.OnDisconnected(m.onLinkLost)
	m.mgr.OnReconnecting(func(attempt int, delay time.Duration) {
		m.debugLog("reconnecting", slog.Int("attempt", attempt), slog.Duration("delay", delay))
	})

	if err := cfg.Radio.SetUp(ctx); err != nil {
		cancel()
		m.mgr.Close()
		return nil, fmt.Errorf("bring %s up: %w", cfg.Radio.Name(), err)
	}
	if err := cfg.Radio.WatchLink(runCtx, m.handleLinkEvent); err != nil {
		cancel()
		m.mgr.Close()
		return nil, fmt.Errorf("watch %s: %w", cfg.Radio.Name(), err)
	}
	m.mgr.StartReconnectLoop()

	m.debugLog("client mode started", slog.String("mode_id", m.id.String()))
	return m, nil
}

// ID returns the instance identity.
func (m *Mode) ID() mode.ID { return m.id }

// Activate starts joining the configured network, if any. Later calls do
// nothing.
func (m *Mode) Activate() {
	m.mu.Lock()
	if m.activated || m.retired {
		m.mu.Unlock()
		return
	}
	m.activated = true
	networkID := m.initial
	uid := firstUID(m.ws)
	m.mu.Unlock()

	if networkID != mode.InvalidNetworkID {
		m.StartConnectToNetwork(networkID, uid, "")
	}
}

// Retired reports whether Retire has been called.
func (m *Mode) Retired() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.retired
}

// Retire fails the pending connect request with ReasonBusy, stops all
// background work and disassociates. It is safe to call more than once.
func (m *Mode) Retire() error {
	m.mu.Lock()
	if m.retired {
		m.mu.Unlock()
		return nil
	}
	m.retired = true
	m.gen++
	p := m.pending
	m.pending = nil
	m.target = nil
	m.mu.Unlock()

	if p != nil {
		p.cancel()
		p.listener.SendFailure(mode.ReasonBusy)
		m.traceOp("connect", &p.network.ID, "failure", "retired", p.uid, time.Since(p.started))
	}

	m.cancel()
	m.mgr.Close()
	m.wg.Wait()
	m.onLinkLost()

	var result *multierror.Error

	ctx, cancel := context.WithTimeout(context.Background(), DefaultRetireTimeout)
	defer cancel()
	m.radioMu.Lock()
	if err := m.radio.Disassociate(ctx); err != nil && !errors.Is(err, driver.ErrNotAssociated) {
		result = multierror.Append(result, fmt.Errorf("disassociate: %w", err))
	}
	m.radioMu.Unlock()

	m.multicast.StopFiltering()

	m.debugLog("client mode retired")
	return result.ErrorOrNil()
}

// ConnectionControl

// ConnectNetwork connects to the stored network result.NetworkID. The
// listener is resolved once the link is up or the attempt failed.
func (m *Mode) ConnectNetwork(result mode.NetworkUpdateResult, listener *mode.ListenerWrapper, callingUID int) {
	if m.Retired() {
		m.idle.ConnectNetwork(result, listener, callingUID)
		return
	}

	cfg, ok := m.store.Lookup(result.NetworkID)
	if !ok {
		listener.SendFailure(mode.ReasonError)
		m.traceOp("connect", &result.NetworkID, "failure", "unknown network", callingUID, 0)
		return
	}

	m.mu.RLock()
	already := m.pending == nil && m.connected != nil && m.connected.ID == cfg.ID &&
		m.mgr.State() == connection.StateConnected
	m.mu.RUnlock()
	if already && !result.CredentialChanged {
		listener.SendSuccess()
		m.traceOp("connect", &cfg.ID, "success", "already connected", callingUID, 0)
		return
	}

	m.startConnect(cfg, "", listener, callingUID)
}

// SaveNetwork succeeds if the network exists in the store. If the
// credentials of the connected network changed, the mode reconnects.
func (m *Mode) SaveNetwork(result mode.NetworkUpdateResult, listener *mode.ListenerWrapper, callingUID int) {
	if m.Retired() {
		m.idle.SaveNetwork(result, listener, callingUID)
		return
	}

	cfg, ok := m.store.Lookup(result.NetworkID)
	if !ok {
		listener.SendFailure(mode.ReasonError)
		m.traceOp("save", &result.NetworkID, "failure", "unknown network", callingUID, 0)
		return
	}
	listener.SendSuccess()
	m.traceOp("save", &cfg.ID, "success", "", callingUID, 0)

	if !result.CredentialChanged {
		return
	}
	m.mu.RLock()
	reconnect := m.connected != nil && m.connected.ID == cfg.ID
	m.mu.RUnlock()
	if reconnect {
		m.startConnect(cfg, "", nil, callingUID)
	}
}

// Disconnect drops the link and abandons a pending connect request, which
// fails with ReasonBusy. No reconnection is attempted.
func (m *Mode) Disconnect() {
	m.mu.Lock()
	if m.retired {
		m.mu.Unlock()
		return
	}
	m.gen++
	p := m.pending
	m.pending = nil
	m.target = nil
	m.wg.Add(1)
	m.mu.Unlock()

	if p != nil {
		p.cancel()
		p.listener.SendFailure(mode.ReasonBusy)
	}
	m.mgr.Disconnect()

	go func() {
		defer m.wg.Done()
		m.connectMu.Lock()
		defer m.connectMu.Unlock()
		m.disassociate()
	}()

	m.traceOp("disconnect", nil, "started", "", 0, 0)
}

// Reconnect records ws and, if the mode is idle, reconnects to the last
// requested network.
func (m *Mode) Reconnect(ws mode.WorkSource) {
	m.mu.Lock()
	if m.retired {
		m.mu.Unlock()
		return
	}
	if !ws.IsEmpty() {
		m.ws = ws
	}
	var last *mode.NetworkConfig
	if m.pending == nil && m.last != nil {
		last = m.last
	}
	m.mu.Unlock()

	if last == nil || m.mgr.State() != connection.StateDisconnected {
		return
	}
	cfg, ok := m.store.Lookup(last.ID)
	if !ok {
		m.debugLog("reconnect: network gone", slog.Int("network_id", last.ID))
		return
	}
	m.startConnect(cfg, "", nil, firstUID(ws))
}

// Reassociate re-joins the current access point.
func (m *Mode) Reassociate() {
	m.mu.RLock()
	var bssid string
	if m.assoc != nil {
		bssid = m.assoc.BSSID
	}
	m.mu.RUnlock()

	m.reassociate("reassociate", bssid, false)
}

// StartConnectToNetwork connects to networkID, optionally pinned to bssid.
// Unknown networks are ignored.
func (m *Mode) StartConnectToNetwork(networkID, uid int, bssid string) {
	if m.Retired() {
		return
	}
	cfg, ok := m.store.Lookup(networkID)
	if !ok {
		m.traceOp("connect", &networkID, "failure", "unknown network", uid, 0)
		return
	}
	m.startConnect(cfg, bssid, nil, uid)
}

// StartRoamToNetwork moves the link to bssid. If networkID is not the
// connected network this is a plain connect.
func (m *Mode) StartRoamToNetwork(networkID int, bssid string) {
	m.mu.RLock()
	same := m.connected != nil && m.connected.ID == networkID
	m.mu.RUnlock()

	if !same {
		m.StartConnectToNetwork(networkID, 0, bssid)
		return
	}
	m.reassociate("roam", bssid, true)
}

// ProbeLink sends a link probe at the given MCS rate. The callback is
// invoked exactly once.
func (m *Mode) ProbeLink(cb mode.LinkProbeCallback, mcs int) {
	if cb == nil {
		return
	}

	m.mu.Lock()
	if m.retired || m.assoc == nil || m.mgr.State() != connection.StateConnected {
		m.mu.Unlock()
		cb.OnFailure(mode.LinkProbeErrorNotConnected)
		return
	}
	if m.probing {
		m.mu.Unlock()
		cb.OnFailure(mode.LinkProbeFailureAlreadyStarted)
		return
	}
	m.probing = true
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		ctx, cancel := context.WithTimeout(m.ctx, m.commandTimeout)
		elapsed, err := m.radio.Probe(ctx, mcs)
		cancel()

		m.mu.Lock()
		m.probing = false
		m.mu.Unlock()

		if err != nil {
			cb.OnFailure(probeFailure(err))
			m.traceOp("probe", nil, "failure", err.Error(), 0, 0)
			return
		}
		cb.OnAck(elapsed)
		m.traceOp("probe", nil, "success", "", 0, elapsed)
	}()
}

func probeFailure(err error) mode.LinkProbeFailure {
	switch {
	case errors.Is(err, driver.ErrProbeUnsupported):
		return mode.LinkProbeFailureMCSUnsupported
	case errors.Is(err, driver.ErrNotAssociated):
		return mode.LinkProbeErrorNotConnected
	case errors.Is(err, context.DeadlineExceeded):
		return mode.LinkProbeFailureTimeout
	case errors.Is(err, context.Canceled):
		return mode.LinkProbeFailureUnspecified
	default:
		return mode.LinkProbeFailureNoAck
	}
}

// ResetSimAuthNetworks is a no-op; stored networks never use SIM
// authentication.
func (m *Mode) ResetSimAuthNetworks(reason mode.SimResetReason) {
	m.debugLog("sim auth reset ignored", slog.Int("reason", int(reason)))
}

// EnableTDLS records a tunneled direct link peer if the radio supports TDLS.
func (m *Mode) EnableTDLS(remoteMAC string, enable bool) {
	if !m.caps.Features.Has(mode.FeatureTDLS) || remoteMAC == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.retired {
		return
	}
	if enable {
		m.tdlsPeers[remoteMAC] = true
	} else {
		delete(m.tdlsPeers, remoteMAC)
	}
}

// startConnect replaces the pending request with a new one and runs it in
// the background.
func (m *Mode) startConnect(cfg mode.NetworkConfig, bssid string, listener *mode.ListenerWrapper, uid int) {
	if bssid == "" {
		bssid = cfg.BSSID
	}
	ctx, cancel := context.WithCancel(m.ctx)
	p := &pendingConnect{
		listener: listener,
		network:  cfg,
		uid:      uid,
		started:  time.Now(),
		ctx:      ctx,
		cancel:   cancel,
	}

	m.mu.Lock()
	if m.retired {
		m.mu.Unlock()
		cancel()
		listener.SendFailure(mode.ReasonBusy)
		return
	}
	prev := m.pending
	m.pending = p
	m.target = &cfg
	m.targetBSSID = bssid
	m.last = &cfg
	m.gen++
	m.wg.Add(1)
	m.mu.Unlock()

	if prev != nil {
		prev.cancel()
		prev.listener.SendFailure(mode.ReasonBusy)
		m.traceOp("connect", &prev.network.ID, "failure", "superseded", prev.uid, time.Since(prev.started))
	}
	m.traceOp("connect", &cfg.ID, "started", "", uid, 0)

	go m.runConnect(p)
}

func (m *Mode) runConnect(p *pendingConnect) {
	defer m.wg.Done()
	defer p.cancel()

	m.connectMu.Lock()
	defer m.connectMu.Unlock()

	err := p.ctx.Err()
	if err == nil {
		switch m.mgr.State() {
		case connection.StateConnected, connection.StateReconnecting:
			m.mgr.Disconnect()
			m.disassociate()
		}

		ctx, cancel := context.WithTimeout(p.ctx, m.connectTimeout)
		err = m.mgr.Connect(ctx)
		cancel()
	}

	m.mu.Lock()
	current := m.pending == p
	if current {
		m.pending = nil
	}
	m.mu.Unlock()

	elapsed := time.Since(p.started)
	switch {
	case err == nil:
		p.listener.SendSuccess()
		m.traceOp("connect", &p.network.ID, "success", "", p.uid, elapsed)
	case !current:
		// Whoever replaced the request already resolved the listener.
	default:
		p.listener.SendFailure(mode.ReasonError)
		m.traceOp("connect", &p.network.ID, "failure", err.Error(), p.uid, elapsed)
		m.warnLog("connect failed", slog.Int("network_id", p.network.ID), slog.Any("error", err))
	}
}

// associate is the connection.Manager's ConnectFunc. It joins the current
// target and records the association unless the target changed meanwhile.
func (m *Mode) associate(ctx context.Context) error {
	m.radioMu.Lock()
	defer m.radioMu.Unlock()

	m.mu.RLock()
	target := m.target
	bssid := m.targetBSSID
	gen := m.gen
	m.mu.RUnlock()

	if target == nil {
		return errNoTarget
	}
	req, err := associateRequest(*target, bssid)
	if err != nil {
		return err
	}

	assoc, err := m.radio.Associate(ctx, req)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		m.disassociateLocked()
		return errSuperseded
	}
	m.assoc = &assoc
	m.connected = target
	m.roaming = false
	m.session++
	m.mu.Unlock()

	return nil
}

func associateRequest(cfg mode.NetworkConfig, bssid string) (driver.AssociateRequest, error) {
	req := driver.AssociateRequest{
		NetworkID: cfg.ID,
		SSID:      cfg.SSID,
		BSSID:     bssid,
		Security:  cfg.Security,
		Hidden:    cfg.Hidden,
	}
	switch cfg.Security {
	case mode.SecurityWPA2PSK:
		psk, err := driver.DerivePSK(cfg.Passphrase, cfg.SSID)
		if err != nil {
			return req, err
		}
		req.PSK = psk
	case mode.SecurityWPA3SAE:
		req.Passphrase = cfg.Passphrase
	}
	return req, nil
}

// reassociate re-joins the connected network at bssid in the background.
func (m *Mode) reassociate(op, bssid string, roam bool) {
	m.mu.Lock()
	if m.retired || m.connected == nil || m.mgr.State() != connection.StateConnected {
		m.mu.Unlock()
		return
	}
	cfg := *m.connected
	gen := m.gen
	if roam {
		m.roaming = true
		m.targetBSSID = bssid
	}
	m.wg.Add(1)
	m.mu.Unlock()

	m.traceOp(op, &cfg.ID, "started", "", 0, 0)

	go func() {
		defer m.wg.Done()
		m.connectMu.Lock()
		defer m.connectMu.Unlock()

		started := time.Now()
		err := m.rejoin(cfg, bssid, gen)

		m.mu.Lock()
		m.roaming = false
		m.mu.Unlock()

		if err != nil {
			m.traceOp(op, &cfg.ID, "failure", err.Error(), 0, time.Since(started))
			if !errors.Is(err, errSuperseded) {
				m.mgr.NotifyConnectionLost()
			}
			return
		}
		m.traceOp(op, &cfg.ID, "success", "", 0, time.Since(started))
	}()
}

func (m *Mode) rejoin(cfg mode.NetworkConfig, bssid string, gen uint64) error {
	req, err := associateRequest(cfg, bssid)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(m.ctx, m.connectTimeout)
	defer cancel()

	m.radioMu.Lock()
	defer m.radioMu.Unlock()

	assoc, err := m.radio.Associate(ctx, req)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen || m.connected == nil {
		return errSuperseded
	}
	m.assoc = &assoc
	return nil
}

func (m *Mode) disassociate() {
	m.radioMu.Lock()
	defer m.radioMu.Unlock()
	m.disassociateLocked()
}

// disassociateLocked must be called with radioMu held.
func (m *Mode) disassociateLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultRetireTimeout)
	defer cancel()
	if err := m.radio.Disassociate(ctx); err != nil && !errors.Is(err, driver.ErrNotAssociated) {
		m.warnLog("disassociate failed", slog.Any("error", err))
	}
}

// handleLinkEvent receives link events from the radio.
func (m *Mode) handleLinkEvent(ev driver.LinkEvent) {
	switch ev.Type {
	case driver.LinkDown:
		if m.mgr.State() != connection.StateConnected {
			return
		}
		m.debugLog("link lost", slog.String("reason", ev.Reason))
		m.mgr.NotifyConnectionLost()
	case driver.LinkRoamed:
		m.mu.Lock()
		if m.assoc != nil && ev.BSSID != "" {
			assoc := *m.assoc
			assoc.BSSID = ev.BSSID
			m.assoc = &assoc
		}
		m.mu.Unlock()
	}
}

func (m *Mode) onLinkState(oldState, newState connection.State) {
	m.emit(wlanlog.Event{
		Category: wlanlog.CategoryState,
		StateChange: &wlanlog.StateChangeEvent{
			Entity:   wlanlog.StateEntityLink,
			OldState: oldState.String(),
			NewState: newState.String(),
		},
	})
}

func (m *Mode) onLinkUp() {
	m.mu.RLock()
	scorer := m.scorer
	session := m.session
	m.mu.RUnlock()

	if scorer != nil {
		scorer.OnStart(session)
	}
}

func (m *Mode) onLinkLost() {
	m.mu.Lock()
	hadLink := m.connected != nil
	m.assoc = nil
	m.connected = nil
	m.roaming = false
	m.dhcp = mode.DHCPResults{}
	scorer := m.scorer
	session := m.session
	m.mu.Unlock()

	if hadLink && scorer != nil {
		scorer.OnStop(session)
	}
}

func firstUID(ws mode.WorkSource) int {
	if len(ws.UIDs) == 0 {
		return 0
	}
	return ws.UIDs[0]
}

func (m *Mode) emit(ev wlanlog.Event) {
	if m.trace == nil {
		return
	}
	ev.Interface = m.radio.Name()
	ev.ModeID = m.id.String()
	wlanlog.Emit(m.trace, ev)
}

func (m *Mode) traceOp(name string, networkID *int, outcome, reason string, uid int, d time.Duration) {
	if m.trace == nil {
		return
	}
	op := &wlanlog.OperationEvent{
		Name:       name,
		Outcome:    outcome,
		Reason:     reason,
		CallingUID: uid,
	}
	if networkID != nil {
		id := *networkID
		op.NetworkID = &id
	}
	if d > 0 {
		op.Duration = &d
	}
	m.emit(wlanlog.Event{Category: wlanlog.CategoryOperation, Operation: op})
}

func (m *Mode) debugLog(msg string, args ...any) {
	if m.logger == nil {
		return
	}
	level := slog.LevelDebug
	if m.verbose.Load() {
		level = slog.LevelInfo
	}
	m.logger.Log(context.Background(), level, msg, append([]any{slog.String("iface", m.radio.Name())}, args...)...)
}

func (m *Mode) warnLog(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, append([]any{slog.String("iface", m.radio.Name())}, args...)...)
	}
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prodview/internal/carousel"
	"prodview/internal/domain"
	"prodview/internal/eventbus"
	"prodview/internal/logic"
	"prodview/internal/ui/handlers"
	"prodview/internal/ui/input"
	inputtypes "prodview/internal/ui/input/types"
	"prodview/internal/ui/state"
	"prodview/internal/ui/views"
)

const pagerWidth = 80

// Options configures the UI model
type Options struct {
	// Privileged users see the Edit button
	Privileged bool
	// DescriptionStyle is a glamour style name or style file path
	DescriptionStyle string
	ShowHelpBar      bool
	CatalogRoot      string

	Logger *zap.Logger
	Bus    eventbus.EventBus  // optional; rescans are unavailable without it
	Store  logic.ProductStore // required
	Pager  Pager              // optional; defaults to the ov pager
}

// Model represents the UI state
type Model struct {
	opts   Options
	bus    eventbus.EventBus
	store  logic.ProductStore
	logger *zap.Logger
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        inputtypes.KeyMap
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	inputHandler *input.Handler
	eventHandler *handlers.EventHandler
	renderer     *views.Renderer
	description  *views.DescriptionRenderer
	helpRender   *HelpRenderer
	pager        Pager
	pagerOps     *PagerOps // set when the default pager is used
}

// NewModel creates a new UI model showing the products currently in the store
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")

	keys := inputtypes.DefaultKeyMap()
	appState := state.NewAppState()
	description := views.NewDescriptionRenderer(opts.DescriptionStyle)

	m := &Model{
		opts:         opts,
		bus:          opts.Bus,
		store:        opts.Store,
		logger:       logger,
		state:        appState,
		help:         help.New(),
		keys:         keys,
		inputHandler: input.New(keys),
		eventHandler: handlers.NewEventHandler(appState, opts.Store, logger),
		renderer:     views.NewRenderer(description),
		description:  description,
		helpRender:   NewHelpRenderer(keys),
		pager:        opts.Pager,
	}
	if m.pager == nil {
		m.pagerOps = NewPagerOps(nil)
		m.pager = m.pagerOps
	}

	appState.SetProducts(opts.Store.All())
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	if m.pagerOps != nil {
		m.pagerOps.SetProgram(p)
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state}
		actions := m.inputHandler.HandleKey(msg, ctx)

		var cmds []tea.Cmd
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case handlers.TickMsg:
		// Keep the spinner moving while a scan runs, but not under the pager
		if !m.state.Scanning || m.inPagerMode {
			return m, nil
		}
		return m, tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
			return handlers.TickMsg(t)
		})

	case handlers.ClearStatusMsg:
		m.state.ClearStatus()
		return m, nil

	case pagerClosedMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.logger.Warn("description pager failed", zap.Error(msg.err))
			m.state.SetStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}
		return m, nil
	}

	return m, nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateImageAction:
		if nav := m.state.Navigator; nav != nil {
			nav.Navigate(a.Direction)
			m.logger.Debug("image navigation",
				zap.String("direction", string(a.Direction)),
				zap.Int("main", nav.MainIndex()),
				zap.Int("window_start", nav.WindowStart()))
		}

	case inputtypes.SelectThumbnailAction:
		if nav := m.state.Navigator; nav != nil && a.Offset < nav.VisibleCount() {
			nav.SelectThumbnail(a.Offset)
			m.logger.Debug("thumbnail selected", zap.Int("offset", a.Offset), zap.Int("main", nav.MainIndex()))
		}

	case inputtypes.SwitchProductAction:
		m.state.SwitchProduct(a.Delta)
		if p := m.state.Current(); p != nil {
			m.logger.Debug("product switched", zap.String("id", p.ID))
		}

	case inputtypes.OpenDescriptionAction:
		return m.openDescription()

	case inputtypes.RescanAction:
		if m.bus == nil {
			m.state.SetStatus("Rescan unavailable", true)
			return nil
		}
		m.logger.Info("rescan requested")
		m.bus.Publish(eventbus.ScanRequestedEvent{})

	case inputtypes.SetHelpVisibleAction:
		m.state.ShowHelp = a.Visible
		m.state.HelpScrollOffset = 0

	case inputtypes.ScrollHelpAction:
		m.state.ScrollHelp(a.Delta)

	case inputtypes.QuitAction:
		m.logger.Info("quit", zap.Bool("force", a.Force))
		return tea.Quit
	}

	return nil
}

// openDescription renders the full description and pages it
func (m *Model) openDescription() tea.Cmd {
	p := m.state.Current()
	if p == nil {
		return nil
	}
	if strings.TrimSpace(p.Description) == "" {
		m.state.SetStatus("No description for this product", false)
		return nil
	}

	content, err := m.pagerContent(p)
	if err != nil {
		m.logger.Warn("render description", zap.String("id", p.ID), zap.Error(err))
		content = p.Description
	}

	m.inPagerMode = true
	pager := m.pager
	return func() tea.Msg {
		return pagerClosedMsg{err: pager.Show(content)}
	}
}

func (m *Model) pagerContent(p *domain.Product) (string, error) {
	body, err := m.description.Render(p.Description, pagerWidth)
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("%s\n%s  %s\n", p.DisplayName(), p.FormattedPrice(), p.StockLabel())
	return header + "\n" + body + "\n", nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Product:       m.state.Current(),
		Navigator:     m.state.Navigator,
		Privileged:    m.opts.Privileged,
		Scanning:      m.state.Scanning,
		ScanFound:     m.state.ScanFound,
		StatusMessage: m.state.StatusMessage,
		StatusIsError: m.state.StatusIsError,
		ShowHelp:      m.state.ShowHelp,
		CatalogRoot:   m.opts.CatalogRoot,
	}
	if vs.Product != nil {
		vs.Position = m.state.CurrentIndex + 1
		vs.Total = len(m.state.Products)
	}
	if m.state.ShowHelp {
		vs.HelpContent = m.helpRender.RenderHelpContent(m.height, m.state.HelpScrollOffset)
	}
	if m.opts.ShowHelpBar {
		vs.HelpBar = m.help.View(m.keys)
	}

	return m.renderer.Render(vs)
}

// CurrentProduct returns the product on screen, or nil
func (m *Model) CurrentProduct() *domain.Product {
	return m.state.Current()
}

// NavigationState returns the carousel state of the current product.
// ok is false when no product is shown.
func (m *Model) NavigationState() (s carousel.State, ok bool) {
	if m.state.Navigator == nil {
		return carousel.State{}, false
	}
	return m.state.Navigator.State(), true
}

// InputMode returns the name of the active input mode
func (m *Model) InputMode() string {
	return m.inputHandler.ModeName()
}

// Package tui is the interactive task list surface.
//
// The update loop is the single event loop driving the state container:
// key presses mutate it directly, while connectivity transitions, pass
// completions and external store changes arrive as messages from
// listening commands and are applied here too. Nothing touches the
// container from another goroutine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/idilsaglam/syncpad/internal/cliui"
	"github.com/idilsaglam/syncpad/internal/connectivity"
	"github.com/idilsaglam/syncpad/internal/reconcile"
	"github.com/idilsaglam/syncpad/internal/task"
	"github.com/idilsaglam/syncpad/internal/tasklist"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// writeQuiet is how long after one of our own store writes an incoming
// file event is assumed to be an echo of it rather than another process.
const writeQuiet = 500 * time.Millisecond

// Config wires the surface's collaborators.
type Config struct {
	Tasks      *tasklist.List
	Monitor    *connectivity.Monitor
	Reconciler *reconcile.Reconciler
	DataDir    string
	Logger     *zap.Logger
}

// Run starts the interactive surface and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	m := newModel(ctx, cfg)
	if w, err := newStoreWatcher(cfg.DataDir); err != nil {
		// The surface still works without external-change refresh.
		cfg.Logger.Warn("store watcher unavailable", zap.Error(err))
	} else {
		m.watcher = w
		defer w.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

type model struct {
	list  list.Model
	input textinput.Model

	// Inline add/edit state. The same input widget serves both.
	adding   bool
	editing  bool
	editID   string
	inputErr string

	tasks      *tasklist.List
	monitor    *connectivity.Monitor
	reconciler *reconcile.Reconciler
	watcher    *storeWatcher
	logger     *zap.Logger
	ctx        context.Context

	online    bool
	passes    int        // reconcile passes in flight
	lastWrite time.Time  // most recent store write made by this process
	undo      *task.Item // last deleted item

	width, height int
}

// Messages produced by the listening commands.
type (
	connChangedMsg  connectivity.Change
	passDoneMsg     struct{ snapshot []tasklist.Stamp }
	storeChangedMsg struct{}
	watchFailedMsg  struct{ err error }
)

func newModel(ctx context.Context, cfg Config) model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = cliui.Title
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 200

	m := model{
		list:       l,
		input:      input,
		tasks:      cfg.Tasks,
		monitor:    cfg.Monitor,
		reconciler: cfg.Reconciler,
		logger:     cfg.Logger,
		ctx:        ctx,
		online:     cfg.Monitor.Online(),
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.listenConnectivity(), m.listenStore())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case connChangedMsg:
		m.online = msg.Online
		cmds := []tea.Cmd{m.listenConnectivity()}
		if msg.Online {
			// One pass per offline-to-online transition. The pass runs
			// to completion even if the signal drops again meanwhile.
			m.passes++
			cmds = append(cmds, m.startPass())
		}
		m.refresh()
		return m, tea.Batch(cmds...)

	case passDoneMsg:
		m.passes--
		marked := m.tasks.CompleteSync(m.ctx, msg.snapshot)
		m.logger.Info("reconcile pass applied", zap.Int("marked", marked))
		m.lastWrite = time.Now()
		m.refresh()
		return m, nil

	case storeChangedMsg:
		cmds := []tea.Cmd{m.listenStore()}
		// Skip reloads for echoes of our own writes, and while a pass is
		// in flight so its snapshot stamps stay valid.
		if m.passes == 0 && time.Since(m.lastWrite) > writeQuiet {
			if err := m.tasks.Reload(m.ctx); err != nil {
				m.logger.Error("reload after external change failed", zap.Error(err))
			} else {
				m.logger.Info("store changed externally, reloaded")
				m.refresh()
			}
		}
		return m, tea.Batch(cmds...)

	case watchFailedMsg:
		m.logger.Warn("store watcher error", zap.Error(msg.err))
		return m, m.listenStore()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adding || m.editing {
		switch msg.String() {
		case "enter":
			return m.submitInput()
		case "esc":
			m.closeInput()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// While the list filter is being typed, every key belongs to it.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "a":
		m.adding = true
		m.inputErr = ""
		m.input.SetValue("")
		m.input.Placeholder = "New task..."
		m.input.Focus()
		m.resize()
		return m, textinput.Blink

	case "e":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editing = true
		m.editID = item.ID
		m.inputErr = ""
		m.input.SetValue(item.Text)
		m.input.CursorEnd()
		m.input.Placeholder = "Edit task..."
		m.input.Focus()
		m.resize()
		return m, textinput.Blink

	case " ":
		if item, ok := m.selected(); ok {
			m.tasks.Toggle(m.ctx, item.ID)
			m.lastWrite = time.Now()
			m.refresh()
		}
		return m, nil

	case "d":
		if item, ok := m.selected(); ok {
			if m.tasks.Delete(m.ctx, item.ID) {
				deleted := item
				m.undo = &deleted
				m.lastWrite = time.Now()
				m.refresh()
			}
		}
		return m, nil

	case "u":
		if m.undo != nil {
			m.tasks.Restore(m.ctx, *m.undo)
			m.undo = nil
			m.lastWrite = time.Now()
			m.refresh()
		}
		return m, nil

	case "r":
		// Reloading resets the mutation stamps an in-flight pass depends
		// on, so it gets the same suppression as external store changes.
		if m.passes > 0 {
			return m, nil
		}
		if err := m.tasks.Reload(m.ctx); err != nil {
			m.logger.Error("manual reload failed", zap.Error(err))
		} else {
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	var err error
	if m.editing {
		_, err = m.tasks.Edit(m.ctx, m.editID, m.input.Value())
	} else {
		_, err = m.tasks.Add(m.ctx, m.input.Value())
	}
	if errors.Is(err, tasklist.ErrEmptyText) {
		m.inputErr = "Task text cannot be empty"
		return m, nil
	}
	if err != nil {
		m.inputErr = err.Error()
		return m, nil
	}
	m.lastWrite = time.Now()
	m.closeInput()
	m.refresh()
	return m, nil
}

func (m *model) closeInput() {
	m.adding = false
	m.editing = false
	m.editID = ""
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m model) selected() (task.Item, bool) {
	if li, ok := m.list.SelectedItem().(listItem); ok {
		return li.item, true
	}
	return task.Item{}, false
}

// refresh rebuilds the rendered list and header from the container.
func (m *model) refresh() {
	items := m.tasks.Items()
	rendered := make([]list.Item, 0, len(items))
	done := 0
	for _, item := range items {
		rendered = append(rendered, listItem{item: item})
		if item.Completed {
			done++
		}
	}
	m.list.SetItems(rendered)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		cliui.Title.Render("Tasks"),
		cliui.Success.Render("✔"), done,
		cliui.Pending.Render("•"), len(items)-done,
		cliui.Accent.Render("Total"), len(items),
	)
}

func (m *model) resize() {
	if m.width == 0 {
		return
	}
	reserve := 3 // status bar and banner
	if m.adding || m.editing {
		reserve += 4 // bordered input box
	}
	h := m.height - reserve
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width, h)
}

func (m model) View() string {
	sections := []string{m.list.View()}
	if m.adding || m.editing {
		sections = append(sections, m.inputView())
	}
	sections = append(sections, m.statusView())
	return strings.Join(sections, "\n")
}

func (m model) inputView() string {
	title := "Add task"
	if m.editing {
		title = "Edit task"
	}
	if m.inputErr != "" {
		title += "  " + cliui.Error.Render(m.inputErr)
	}
	return inputBoxStyle.Render(title + "\n" + m.input.View())
}

func (m model) statusView() string {
	return statusBar(m.online, m.tasks.PendingCount(), m.passes > 0)
}

// statusBar renders the footer: connectivity indicator, pending count and
// the offline banner. The banner appears only when offline with pending
// items.
func statusBar(online bool, pending int, syncing bool) string {
	var b strings.Builder
	if online {
		b.WriteString(cliui.Success.Render("● online"))
	} else {
		b.WriteString(cliui.Pending.Render("○ offline"))
	}
	if syncing {
		b.WriteString("  " + cliui.Accent.Render("⇅ syncing"))
	}
	if pending > 0 {
		b.WriteString("  " + cliui.Muted.Render(fmt.Sprintf("%d pending", pending)))
	}
	if !online && pending > 0 {
		b.WriteString("\n" + cliui.Pending.Render(fmt.Sprintf("Offline: %d change(s) waiting to sync", pending)))
	}
	return b.String()
}

// listenConnectivity blocks on the monitor channel and feeds the next
// transition into the update loop. Re-armed after every message.
func (m model) listenConnectivity() tea.Cmd {
	return func() tea.Msg {
		select {
		case change := <-m.monitor.Changes():
			return connChangedMsg(change)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// startPass snapshots the container now, on the update goroutine, and
// returns a command that waits out the simulated latency elsewhere. The
// completion message carries the snapshot back so CompleteSync also runs
// on the update goroutine.
func (m model) startPass() tea.Cmd {
	snapshot := m.tasks.Snapshot()
	m.logger.Info("reconcile pass started", zap.Int("items", len(snapshot)))
	rec, ctx := m.reconciler, m.ctx
	return func() tea.Msg {
		if !rec.Wait(ctx) {
			return nil
		}
		return passDoneMsg{snapshot: snapshot}
	}
}

func (m model) listenStore() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg { return w.wait() }
}

package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/filedialog/dialog"
	"github.com/desertthunder/filedialog/internal/formatter"
	"github.com/desertthunder/filedialog/internal/provider"
	"github.com/desertthunder/filedialog/internal/recent"
	"github.com/desertthunder/filedialog/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LogView ViewState = iota
	PickView
	SaveView
	RecentView
)

// Dialog channels the host launches against. The bridge handed to
// [NewModel] must carry exactly the registrations from [Registrations].
const (
	KindTranscript dialog.Kind = "transcript"
	KindDocument   dialog.Kind = "document"
	KindImport     dialog.Kind = "import"
	KindWorkspace  dialog.Kind = "workspace"
)

// Registrations declares the host's dialog channels, one kind per family.
func Registrations() []dialog.Registration {
	return []dialog.Registration{
		dialog.WithSave(KindTranscript),
		dialog.WithLoad(KindDocument),
		dialog.WithPickFile(KindImport),
		dialog.WithPickDirectory(KindWorkspace),
	}
}

func kindFor(family dialog.Family) dialog.Kind {
	switch family {
	case dialog.FamilySave:
		return KindTranscript
	case dialog.FamilyLoad:
		return KindDocument
	case dialog.FamilyPickFile:
		return KindImport
	default:
		return KindWorkspace
	}
}

// tone classifies an event-log line for styling.
type tone int

const (
	toneInfo tone = iota
	toneOK
	toneWarn
	toneErr
)

type logLine struct {
	text string
	tone tone
}

// launchTag remembers an in-flight launch so the overlay that presents it
// can record the chosen directory under the right channel. Tags are
// claimed oldest-first per compatible mode; load and pick-file share the
// provider's file mode, so arrival order is what tells them apart.
type launchTag struct {
	family dialog.Family
	kind   dialog.Kind
}

// ModelOpts contains the dependencies for [NewModel]. Bridge and Term are
// required and must share the same provider; Store is optional.
type ModelOpts struct {
	Bridge   *dialog.Dialogs
	Term     *provider.Term
	Store    *recent.Store
	Logger   *log.Logger
	Defaults shared.DialogsConfig
	TickRate time.Duration
	History  int
}

// Model represents the TUI application state.
type Model struct {
	bridge   *dialog.Dialogs
	term     *provider.Term
	store    *recent.Store
	logger   *log.Logger
	defaults shared.DialogsConfig
	tickRate time.Duration
	history  int

	width  int
	height int
	view   ViewState
	keys   keyMap
	help   help.Model
	sp     spinner.Model

	picker  filepicker.Model
	nameIn  textinput.Model
	recents list.Model

	req      *provider.Request
	reqTag   launchTag
	saveDir  string
	picked   []dialog.Target
	awaiting []launchTag

	log      []logLine
	pending  []dialog.Operation
	lastPath string
	nextDir  string
	spinning bool
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 250 * time.Millisecond
	}
	if opts.History <= 0 {
		opts.History = 200
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.ok

	return &Model{
		bridge:   opts.Bridge,
		term:     opts.Term,
		store:    opts.Store,
		logger:   opts.Logger,
		defaults: opts.Defaults,
		tickRate: opts.TickRate,
		history:  opts.History,
		view:     LogView,
		keys:     newKeyMap(),
		help:     help.New(),
		sp:       sp,
		nameIn:   textinput.New(),
	}
}

// Init starts the tick loop and the dialog-request listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.waitForRequest())
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// waitForRequest blocks on the provider's request channel. It is armed
// once at Init and re-armed only after the active overlay resolves, so
// queued requests present one at a time in arrival order.
func (m *Model) waitForRequest() tea.Cmd {
	return func() tea.Msg {
		req, ok := <-m.term.Requests()
		if !ok {
			return nil
		}
		return requestMsg{req: req}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nameIn.Width = max(msg.Width-24, 20)
		if m.view == PickView {
			m.picker.AutoHeight = false
			m.picker.Height = max(msg.Height-10, 5)
		}
		if m.view == RecentView {
			m.recents.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case TickMsg:
		m.drain()
		return m, m.tickCmd()

	case WakeMsg:
		m.drain()
		return m, nil

	case requestMsg:
		return m.presentRequest(msg.req)

	case recentsLoadedMsg:
		if msg.err != nil {
			m.note(toneErr, fmt.Sprintf("recent locations: %v", msg.err))
			return m, nil
		}
		items := make([]list.Item, len(msg.locations))
		for i, loc := range msg.locations {
			items[i] = locationItem{location: loc}
		}
		m.recents = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.recents.Title = "Recent dialog locations"
		m.recents.SetShowStatusBar(false)
		m.recents.SetFilteringEnabled(false)
		if m.width > 0 {
			m.recents.SetSize(m.width-4, m.height-8)
		}
		m.view = RecentView
		return m, nil

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		if len(m.pending) == 0 && m.req == nil {
			m.spinning = false
			return m, nil
		}
		return m, cmd

	case tea.KeyMsg:
		switch m.view {
		case LogView:
			return m.handleLogKeys(msg)
		case PickView:
			return m.handlePickKeys(msg)
		case SaveView:
			return m.handleSaveKeys(msg)
		case RecentView:
			return m.handleRecentKeys(msg)
		}
	}

	return m.updateWidgets(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case PickView:
		return m.renderPick()
	case SaveView:
		return m.renderSave()
	case RecentView:
		return m.renderRecents()
	default:
		return m.renderLog()
	}
}

// drain polls the bridge once and appends whatever resolved to the event
// log. Runs on every tick and on every wake.
func (m *Model) drain() {
	for _, ev := range m.bridge.Poll() {
		m.push(logLine{text: formatter.EventLine(ev), tone: eventTone(ev)})
		switch e := ev.(type) {
		case dialog.FilePicked:
			m.lastPath = e.Path
		case dialog.DirectoryPicked:
			m.lastPath = e.Path
		}
	}
	m.pending = m.bridge.Pending()
}

func (m *Model) push(line logLine) {
	m.log = append(m.log, line)
	if over := len(m.log) - m.history; over > 0 {
		m.log = m.log[over:]
	}
}

func (m *Model) note(t tone, text string) {
	m.push(logLine{text: text, tone: t})
}

func eventTone(ev dialog.Event) tone {
	switch e := ev.(type) {
	case dialog.FileSaved:
		if e.Err != nil {
			return toneErr
		}
		return toneOK
	case dialog.FileLoaded:
		if e.Err != nil {
			return toneErr
		}
		return toneOK
	case dialog.FilePicked, dialog.DirectoryPicked:
		return toneOK
	default:
		return toneWarn
	}
}

// transcript renders the event log as plain text, the payload for the
// save channel.
func (m *Model) transcript() []byte {
	var b strings.Builder
	for _, line := range m.log {
		b.WriteString(line.text)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// builder assembles a launch with the host defaults and the channel's
// remembered directory.
func (m *Model) builder(family dialog.Family, multi bool) *dialog.Builder {
	kind := kindFor(family)
	b := m.bridge.Dialog()

	if family != dialog.FamilyPickDirectory {
		for _, f := range m.defaults.Filters {
			b.AddFilter(f.Name, f.Extensions...)
		}
	}

	title := m.defaults.Title
	if title == "" {
		title = launchTitle(family, multi)
	}
	b.SetTitle(title)

	dir := m.nextDir
	if dir == "" && m.store != nil {
		if last, err := m.store.Last(family.String(), string(kind)); err == nil {
			dir = last
		}
	}
	if dir == "" {
		dir = m.defaults.Directory
	}
	if dir != "" {
		b.SetDirectory(dir)
	}
	m.nextDir = ""
	return b
}

func launchTitle(family dialog.Family, multi bool) string {
	switch family {
	case dialog.FamilySave:
		return "Save transcript"
	case dialog.FamilyLoad:
		if multi {
			return "Load documents"
		}
		return "Load document"
	case dialog.FamilyPickFile:
		if multi {
			return "Import files"
		}
		return "Import file"
	default:
		if multi {
			return "Choose workspaces"
		}
		return "Choose workspace"
	}
}

func (m *Model) launchSave() tea.Cmd {
	b := m.builder(dialog.FamilySave, false)
	if m.defaults.FileName != "" {
		b.SetFileName(m.defaults.FileName)
	}
	if err := b.SaveFile(KindTranscript, m.transcript()); err != nil {
		m.note(toneErr, fmt.Sprintf("launch failed: %v", err))
		return nil
	}
	return m.launched(dialog.FamilySave, "save transcript")
}

func (m *Model) launchOpen(family dialog.Family, multi bool) tea.Cmd {
	kind := kindFor(family)
	b := m.builder(family, multi)

	var err error
	switch {
	case family == dialog.FamilyLoad && !multi:
		err = b.LoadFile(kind)
	case family == dialog.FamilyLoad:
		err = b.LoadMultipleFiles(kind)
	case family == dialog.FamilyPickFile && !multi:
		err = b.PickFile(kind)
	case family == dialog.FamilyPickFile:
		err = b.PickMultipleFiles(kind)
	case !multi:
		err = b.PickDirectory(kind)
	default:
		err = b.PickMultipleDirectories(kind)
	}
	if err != nil {
		m.note(toneErr, fmt.Sprintf("launch failed: %v", err))
		return nil
	}
	return m.launched(family, strings.ToLower(launchTitle(family, multi)))
}

// launched records the in-flight launch and keeps the spinner running
// while anything is pending.
func (m *Model) launched(family dialog.Family, label string) tea.Cmd {
	m.awaiting = append(m.awaiting, launchTag{family: family, kind: kindFor(family)})
	m.note(toneInfo, fmt.Sprintf("dialog opened: %s", label))
	m.logger.Debug("launch requested", "label", label)
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.sp.Tick
}

// claimLaunch pops the oldest launch the request could belong to.
func (m *Model) claimLaunch(mode provider.Mode) launchTag {
	for i, tag := range m.awaiting {
		if modeMatches(mode, tag.family) {
			m.awaiting = append(m.awaiting[:i], m.awaiting[i+1:]...)
			return tag
		}
	}
	return launchTag{}
}

func modeMatches(mode provider.Mode, family dialog.Family) bool {
	switch mode {
	case provider.ModeSave:
		return family == dialog.FamilySave
	case provider.ModeFile, provider.ModeFiles:
		return family == dialog.FamilyLoad || family == dialog.FamilyPickFile
	default:
		return family == dialog.FamilyPickDirectory
	}
}

// presentRequest turns the next dialog request into an overlay.
func (m *Model) presentRequest(req provider.Request) (tea.Model, tea.Cmd) {
	m.req = &req
	m.reqTag = m.claimLaunch(req.Mode)
	m.picked = nil

	if req.Mode == provider.ModeSave {
		m.saveDir = startDir(req.Config)
		m.nameIn.SetValue(req.Config.FileName)
		m.nameIn.CursorEnd()
		m.view = SaveView
		return m, tea.Batch(m.nameIn.Focus(), textinput.Blink)
	}

	fp := filepicker.New()
	fp.CurrentDirectory = startDir(req.Config)
	fp.AllowedTypes = allowedTypes(req.Config.Filters)
	fp.DirAllowed = req.Mode == provider.ModeDirectory || req.Mode == provider.ModeDirectories
	fp.FileAllowed = !fp.DirAllowed
	if m.height > 0 {
		fp.AutoHeight = false
		fp.Height = max(m.height-10, 5)
	}
	m.picker = fp
	m.view = PickView
	return m, m.picker.Init()
}

// respond resolves the active overlay's request with a selection and
// records its directory for the channel. Callers re-arm waitForRequest to
// pick up the next queued request.
func (m *Model) respond(targets ...dialog.Target) {
	if m.req == nil {
		return
	}
	m.req.Respond(targets...)
	if len(targets) > 0 {
		m.touch(targets[0])
	}
	m.req = nil
	m.picked = nil
	m.view = LogView
}

// dismiss resolves the active overlay's request as a cancellation.
func (m *Model) dismiss() {
	if m.req == nil {
		return
	}
	m.req.Respond()
	m.req = nil
	m.picked = nil
	m.view = LogView
}

// touch remembers the directory a selection came from under the launch's
// channel. Advisory: failures are logged, never surfaced.
func (m *Model) touch(first dialog.Target) {
	if m.store == nil || m.reqTag.kind == "" {
		return
	}
	dir := filepath.Dir(first.Path)
	if dir == "" || dir == "." {
		return
	}
	if err := m.store.Touch(m.reqTag.family.String(), string(m.reqTag.kind), dir); err != nil {
		m.logger.Warn("failed to record recent location", "error", err)
	}
}

func (m *Model) addPick(t dialog.Target) {
	for _, p := range m.picked {
		if p.Path == t.Path {
			return
		}
	}
	m.picked = append(m.picked, t)
}

func (m *Model) loadRecents() tea.Cmd {
	if m.store == nil {
		m.note(toneWarn, "recent locations unavailable (no database)")
		return nil
	}
	store := m.store
	return func() tea.Msg {
		locations, err := store.List()
		return recentsLoadedMsg{locations: locations, err: err}
	}
}

func (m *Model) revealLast() {
	if m.lastPath == "" {
		m.note(toneWarn, "nothing picked yet")
		return
	}
	if err := shared.Reveal(m.lastPath); err != nil {
		m.note(toneErr, fmt.Sprintf("reveal failed: %v", err))
		return
	}
	m.note(toneInfo, fmt.Sprintf("revealed %s", m.lastPath))
}

func (m *Model) handleLogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.save):
		return m, m.launchSave()
	case key.Matches(msg, m.keys.load):
		return m, m.launchOpen(dialog.FamilyLoad, false)
	case key.Matches(msg, m.keys.loadMany):
		return m, m.launchOpen(dialog.FamilyLoad, true)
	case key.Matches(msg, m.keys.pick):
		return m, m.launchOpen(dialog.FamilyPickFile, false)
	case key.Matches(msg, m.keys.pickMany):
		return m, m.launchOpen(dialog.FamilyPickFile, true)
	case key.Matches(msg, m.keys.dir):
		return m, m.launchOpen(dialog.FamilyPickDirectory, false)
	case key.Matches(msg, m.keys.dirMany):
		return m, m.launchOpen(dialog.FamilyPickDirectory, true)
	case key.Matches(msg, m.keys.recents):
		return m, m.loadRecents()
	case key.Matches(msg, m.keys.reveal):
		m.revealLast()
	}
	return m, nil
}

func (m *Model) handlePickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.dismiss()
		return m, m.waitForRequest()
	case "tab":
		if m.req != nil && m.req.Mode.Multiple() && len(m.picked) > 0 {
			m.respond(m.picked...)
			return m, m.waitForRequest()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		target := dialog.NewTarget(path)
		if m.req != nil && m.req.Mode.Multiple() {
			m.addPick(target)
			return m, cmd
		}
		m.respond(target)
		return m, tea.Batch(cmd, m.waitForRequest())
	}
	return m, cmd
}

func (m *Model) handleSaveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.dismiss()
		return m, m.waitForRequest()
	case "enter":
		name := strings.TrimSpace(m.nameIn.Value())
		if name == "" {
			return m, nil
		}
		m.respond(dialog.NewTarget(filepath.Join(m.saveDir, name)))
		return m, m.waitForRequest()
	}

	var cmd tea.Cmd
	m.nameIn, cmd = m.nameIn.Update(msg)
	return m, cmd
}

func (m *Model) handleRecentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = LogView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.recents.SelectedItem().(locationItem); ok {
			m.nextDir = it.location.Directory
			m.note(toneInfo, fmt.Sprintf("next dialog starts at %s", m.nextDir))
			m.view = LogView
		}
		return m, nil
	case key.Matches(msg, m.keys.forget):
		if it, ok := m.recents.SelectedItem().(locationItem); ok && m.store != nil {
			if err := m.store.Forget(it.location.Family, it.location.Kind); err != nil {
				m.note(toneErr, fmt.Sprintf("forget failed: %v", err))
				return m, nil
			}
			return m, m.loadRecents()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.recents, cmd = m.recents.Update(msg)
	return m, cmd
}

// updateWidgets forwards non-key messages (directory reads, cursor
// blinks) to whichever widget the current view embeds.
func (m *Model) updateWidgets(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PickView:
		m.picker, cmd = m.picker.Update(msg)
	case SaveView:
		m.nameIn, cmd = m.nameIn.Update(msg)
	case RecentView:
		m.recents, cmd = m.recents.Update(msg)
	}
	return m, cmd
}

func (m *Model) renderLog() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("filedialog host"))
	b.WriteString("\n")

	visible := m.log
	if lines := max(m.height-8, 5); len(visible) > lines {
		visible = visible[len(visible)-lines:]
	}
	if len(visible) == 0 {
		b.WriteString(styles.dim.Render("no dialog events yet"))
		b.WriteString("\n")
	}
	for _, line := range visible {
		b.WriteString(styles.Line(line.tone).Render(line.text))
		b.WriteString("\n")
	}

	if pl := formatter.PendingLine(m.pending); pl != "" {
		b.WriteString("\n")
		b.WriteString(m.sp.View())
		b.WriteString(styles.warn.Render(pl))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{
		m.keys.save, m.keys.load, m.keys.loadMany, m.keys.pick,
		m.keys.dir, m.keys.recents, m.keys.reveal, m.keys.quit,
	}))
	return b.String()
}

func (m *Model) renderPick() string {
	if m.req == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.title.Render(overlayTitle(*m.req)))
	b.WriteString("\n")
	if f := filterLine(m.req.Config.Filters); f != "" {
		b.WriteString(styles.dim.Render(f))
		b.WriteString("\n")
	}
	b.WriteString(m.picker.View())
	b.WriteString("\n")

	if m.req.Mode.Multiple() {
		b.WriteString(styles.ok.Render(fmt.Sprintf("%d selected", len(m.picked))))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.done, m.keys.back}))
	} else {
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back}))
	}
	return b.String()
}

func (m *Model) renderSave() string {
	if m.req == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.title.Render(overlayTitle(*m.req)))
	b.WriteString("\n")
	b.WriteString(styles.dim.Render(fmt.Sprintf("directory: %s", m.saveDir)))
	b.WriteString("\n")
	if f := filterLine(m.req.Config.Filters); f != "" {
		b.WriteString(styles.dim.Render(f))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.nameIn.View())
	b.WriteString("\n\n")
	saveKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	)
	b.WriteString(m.help.ShortHelpView([]key.Binding{saveKey, m.keys.back}))
	return b.String()
}

func (m *Model) renderRecents() string {
	var b strings.Builder
	b.WriteString(m.recents.View())
	b.WriteString("\n")
	useKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "use for next dialog"),
	)
	b.WriteString(m.help.ShortHelpView([]key.Binding{useKey, m.keys.forget, m.keys.back}))
	return b.String()
}

// overlayTitle prefers the launch's configured title, falling back to a
// mode-derived one.
func overlayTitle(req provider.Request) string {
	if req.Config.Title != "" {
		return req.Config.Title
	}
	switch req.Mode {
	case provider.ModeSave:
		return "Save file"
	case provider.ModeFile:
		return "Open file"
	case provider.ModeFiles:
		return "Open files"
	case provider.ModeDirectory:
		return "Choose directory"
	default:
		return "Choose directories"
	}
}

// filterLine renders the launch's filters in their configured order.
func filterLine(filters []dialog.Filter) string {
	if len(filters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Name, strings.Join(f.Extensions, ", ")))
	}
	return strings.Join(parts, " · ")
}

// startDir resolves the directory an overlay opens in, ignoring hints
// that no longer exist on disk.
func startDir(cfg dialog.Config) string {
	if cfg.Directory != "" {
		if info, err := os.Stat(cfg.Directory); err == nil && info.IsDir() {
			return cfg.Directory
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// allowedTypes flattens filters into the picker's extension list. Any
// wildcard filter means everything is selectable.
func allowedTypes(filters []dialog.Filter) []string {
	var exts []string
	for _, f := range filters {
		for _, ext := range f.Extensions {
			if ext == "" || ext == "*" {
				return nil
			}
			exts = append(exts, "."+strings.TrimPrefix(ext, "."))
		}
	}
	return exts
}

// Package tui is the interactive find-all dialog.
//
// The dialog drives a findall.Controller in manual pace. Every engine step
// runs as a command off the UI goroutine and reports back with a stepMsg;
// the next step is only issued once that message has been rendered, so a
// busy display slows the walk instead of queueing matches.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jpl-au/hive/internal/clip"
	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/findall"
	"github.com/jpl-au/hive/internal/format"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/service"
	"github.com/jpl-au/hive/internal/validate"
)

// Options configures the dialog.
type Options struct {
	Settings findall.Settings // Initial search flags and append mode
	Text     string           // Text to search for on open
	Start    string           // Start key; searches below it when set
	Results  string           // Result file loaded on open and written by save
	Saver    findall.Saver    // Where settings go on close
}

type focus int

const (
	focusInput focus = iota
	focusList
)

// Model is the dialog state.
type Model struct {
	ctx   context.Context
	ctrl  *findall.Controller
	input textinput.Model
	start string
	file  string
	focus focus

	rows     []result.Match
	cursor   int
	offset   int
	selected map[int]bool
	sortCol  result.Column
	sortAsc  bool
	sorted   bool

	ended      *atomic.Int32 // how the last session finished
	inFlight   bool          // a step command is running
	pending    bool          // a find was requested while a step ran
	confirming bool          // asking whether to stop and close
	closing    bool          // close once the session ends

	status    string
	statusErr bool
	width     int
	height    int
	err       error
	copy      func(string) error
}

// New builds the dialog. A result file that exists is loaded; a malformed
// one is an error and the dialog does not open.
func New(ctx context.Context, svc service.Service, opts Options) (Model, error) {
	m := Model{
		ctx:      ctx,
		file:     opts.Results,
		selected: map[int]bool{},
		ended:    &atomic.Int32{},
		width:    100,
		height:   24,
		copy:     clip.Copy,
	}
	if opts.Start != "" {
		p, err := validate.Path(opts.Start, 0)
		if err != nil {
			return m, err
		}
		m.start = p
	}

	ended := m.ended
	m.ctrl = findall.New(svc.Tree(), opts.Settings,
		findall.WithManualPace(),
		findall.WithNavigator(svc),
		findall.WithSaver(opts.Saver),
		findall.OnState(func(_, to findall.State) {
			if to == findall.Completed || to == findall.Cancelled {
				ended.Store(int32(to))
			}
		}),
	)

	if m.file != "" {
		f, err := os.Open(m.file)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return m, err
		default:
			err = m.ctrl.Load(f, false)
			f.Close()
			if err != nil {
				return m, fmt.Errorf("%s: %w", m.file, err)
			}
		}
	}

	ti := textinput.New()
	ti.Placeholder = "Text to find"
	ti.CharLimit = 256
	ti.Prompt = "Find: "
	ti.SetValue(opts.Text)
	ti.Focus()
	m.input = ti
	m.refresh()
	return m, nil
}

// Err returns the error the dialog closed with, if any.
func (m Model) Err() error { return m.err }

// Init starts the first find when the dialog opened with text.
func (m Model) Init() tea.Cmd {
	if m.input.Value() == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, func() tea.Msg { return startMsg{} })
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-12, 10)
		m.scroll()
		return m, nil

	case startMsg:
		return m, m.find()

	case stepMsg:
		return m, m.stepped(msg)

	case savedMsg:
		if msg.err != nil {
			m.fail(msg.err)
		} else {
			m.info(fmt.Sprintf("Saved %d match(es) to %s", msg.n, msg.path))
		}
		return m, nil

	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m *Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch {
		case key.Matches(msg, Keys.Yes):
			m.confirming = false
			m.closing = true
			m.ctrl.RequestCancel()
			m.info("Stopping search...")
			if !m.inFlight {
				return *m, m.step()
			}
		case key.Matches(msg, Keys.No):
			m.confirming = false
			m.info("Search continues")
		}
		return *m, nil
	}

	if msg.String() == "ctrl+c" || (m.focus == focusList && key.Matches(msg, Keys.Quit)) {
		return *m, m.close()
	}

	switch {
	case key.Matches(msg, Keys.Cancel):
		if m.ctrl.Running() {
			m.ctrl.RequestCancel()
			m.info("Stopping search...")
		} else if m.focus == focusList {
			m.setFocus(focusInput)
		}
		return *m, nil
	case key.Matches(msg, Keys.Focus):
		if m.focus == focusInput {
			m.setFocus(focusList)
		} else {
			m.setFocus(focusInput)
		}
		return *m, nil
	case key.Matches(msg, Keys.Save):
		return *m, m.save()
	}

	if opt, ok := m.toggle(msg); ok {
		st := m.ctrl.Settings()
		m.ctrl.SetOptions(st.Options.Set(opt, !st.Options.Has(opt)))
		return *m, nil
	}
	if key.Matches(msg, Keys.ToggleApp) {
		m.ctrl.SetAppend(!m.ctrl.Settings().Append)
		return *m, nil
	}

	if m.focus == focusInput {
		if key.Matches(msg, Keys.Find) {
			return *m, m.find()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return *m, cmd
	}
	return *m, m.listKey(msg)
}

func (m *Model) toggle(msg tea.KeyMsg) (find.Options, bool) {
	switch {
	case key.Matches(msg, Keys.ToggleKeys):
		return find.SearchKeys, true
	case key.Matches(msg, Keys.ToggleVals):
		return find.SearchValues, true
	case key.Matches(msg, Keys.ToggleData):
		return find.SearchData, true
	case key.Matches(msg, Keys.ToggleWord):
		return find.MatchWholeWords, true
	case key.Matches(msg, Keys.ToggleCase):
		return find.MatchCase, true
	case key.Matches(msg, Keys.ToggleStd):
		return find.SearchStdRegistry, true
	case key.Matches(msg, Keys.ToggleReal):
		return find.SearchRealRegistry, true
	}
	return 0, false
}

func (m *Model) listKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Up):
		m.move(-1)
	case key.Matches(msg, Keys.Down):
		m.move(1)
	case key.Matches(msg, Keys.PageUp):
		m.move(-m.listHeight())
	case key.Matches(msg, Keys.PageDown):
		m.move(m.listHeight())
	case key.Matches(msg, Keys.Select):
		if len(m.rows) > 0 {
			if m.selected[m.cursor] {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = true
			}
			m.move(1)
		}
	case key.Matches(msg, Keys.Delete):
		idx := m.selection()
		if err := m.ctrl.DeleteSelected(idx); err != nil {
			m.fail(err)
			break
		}
		m.afterReorder()
		if len(idx) == 0 {
			m.info("Cleared results")
		} else {
			m.info(fmt.Sprintf("Deleted %d match(es)", len(idx)))
		}
	case key.Matches(msg, Keys.DeleteAll):
		m.ctrl.DeleteAll()
		m.afterReorder()
		m.info("Cleared results")
	case key.Matches(msg, Keys.SortPath):
		m.sortBy(result.ColumnPath)
	case key.Matches(msg, Keys.SortName):
		m.sortBy(result.ColumnName)
	case key.Matches(msg, Keys.SortData):
		m.sortBy(result.ColumnData)
	case key.Matches(msg, Keys.Copy):
		idx := m.selection()
		text, err := m.ctrl.Copy(idx)
		if err == nil {
			err = m.copy(text)
		}
		if err != nil {
			m.fail(err)
			break
		}
		n := len(idx)
		if n == 0 {
			n = len(m.rows)
		}
		m.info(fmt.Sprintf("Copied %d match(es)", n))
	case key.Matches(msg, Keys.GoTo):
		if len(m.rows) == 0 {
			break
		}
		match, err := m.ctrl.GoTo(m.ctx, m.cursor)
		if err != nil {
			m.fail(err)
			break
		}
		m.info("Found " + describe(match))
	}
	return nil
}

// find starts or continues a session for the input text.
func (m *Model) find() tea.Cmd {
	text := m.input.Value()
	opts := m.ctrl.Settings().Options.Set(find.SearchSelected, m.start != "")
	if text == "" || !opts.CanStart() {
		m.fail(findall.ErrCannotStart)
		return nil
	}
	if m.inFlight {
		m.pending = true
		return nil
	}
	// A new session replaces the rows the selection points at.
	if !m.ctrl.Settings().Append && !m.ctrl.Continues(text, m.start, opts) {
		m.selected = map[int]bool{}
	}
	m.inFlight = true
	m.ended.Store(int32(findall.Idle))
	m.info("Searching...")
	ctx, ctrl, start := m.ctx, m.ctrl, m.start
	return func() tea.Msg {
		return stepMsg{err: ctrl.Find(ctx, text, start, opts)}
	}
}

// step resumes a paused session by one event.
func (m *Model) step() tea.Cmd {
	m.inFlight = true
	ctrl := m.ctrl
	return func() tea.Msg {
		return stepMsg{err: ctrl.Continue()}
	}
}

func (m *Model) stepped(msg stepMsg) tea.Cmd {
	m.inFlight = false
	m.refresh()
	if msg.err != nil {
		m.fail(msg.err)
	}
	if m.pending {
		m.pending = false
		return m.find()
	}
	if m.ctrl.State() == findall.Paused {
		return m.step()
	}

	if msg.err == nil {
		switch err := m.ctrl.Err(); {
		case err != nil:
			m.fail(err)
		case findall.State(m.ended.Load()) == findall.Cancelled:
			m.info(fmt.Sprintf("Cancelled, %d match(es)", len(m.rows)))
		default:
			m.info(fmt.Sprintf("Done, %d match(es)", len(m.rows)))
		}
	}
	if m.closing {
		return m.close()
	}
	return nil
}

// close ends the dialog, asking first while a search runs.
func (m *Model) close() tea.Cmd {
	if m.ctrl.Running() {
		m.confirming = true
		m.status = "Stop the running search and close? (y/n)"
		m.statusErr = false
		return nil
	}
	if err := m.ctrl.Close(nil); err != nil {
		m.err = err
	}
	return tea.Quit
}

func (m *Model) save() tea.Cmd {
	if m.file == "" {
		m.fail(errors.New("no result file (start with --results)"))
		return nil
	}
	path, rows := m.file, m.ctrl.Results()
	return func() tea.Msg {
		return savedMsg{path: path, n: len(rows), err: result.WriteFile(path, rows)}
	}
}

func (m *Model) sortBy(col result.Column) {
	if m.sorted && m.sortCol == col {
		m.sortAsc = !m.sortAsc
	} else {
		m.sortCol, m.sortAsc, m.sorted = col, true, true
	}
	m.ctrl.Sort(col, m.sortAsc)
	m.afterReorder()
}

// afterReorder drops the selection, since indexes no longer line up.
func (m *Model) afterReorder() {
	m.selected = map[int]bool{}
	m.refresh()
}

func (m *Model) selection() []int {
	var idx []int
	for i := range m.rows {
		if m.selected[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m *Model) refresh() {
	m.rows = m.ctrl.Results()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.scroll()
}

func (m *Model) move(n int) {
	m.cursor = min(max(m.cursor+n, 0), max(len(m.rows)-1, 0))
	m.scroll()
}

func (m *Model) scroll() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) info(s string) { m.status, m.statusErr = s, false }

func (m *Model) fail(err error) { m.status, m.statusErr = err.Error(), true }

func (m Model) listHeight() int {
	return max(m.height-11, 3)
}

func describe(r result.Match) string {
	if r.Kind() == result.KindKey {
		return r.Path
	}
	return r.Path + " [" + r.ColumnText(result.ColumnName) + "]"
}

// View renders the dialog.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("hive find"))
	if m.start != "" {
		b.WriteString(styleMuted.Render("  below " + m.start))
	}
	b.WriteString("\n")

	inputPane := stylePane
	listPane := stylePaneFocused
	if m.focus == focusInput {
		inputPane, listPane = stylePaneFocused, stylePane
	}
	inner := max(m.width-2, 20)
	b.WriteString(inputPane.Width(inner).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.optionsLine())
	b.WriteString("\n")
	b.WriteString(listPane.Width(inner).Render(m.listView(inner)))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(m.helpLine()))
	return b.String()
}

func (m Model) optionsLine() string {
	st := m.ctrl.Settings()
	flags := []struct {
		label string
		on    bool
	}{
		{"keys", st.Options.Has(find.SearchKeys)},
		{"values", st.Options.Has(find.SearchValues)},
		{"data", st.Options.Has(find.SearchData)},
		{"whole", st.Options.Has(find.MatchWholeWords)},
		{"case", st.Options.Has(find.MatchCase)},
		{"std", st.Options.Has(find.SearchStdRegistry)},
		{"real", st.Options.Has(find.SearchRealRegistry)},
		{"append", st.Append},
	}
	parts := make([]string, len(flags))
	for i, f := range flags {
		if f.on {
			parts[i] = styleOn.Render("[x] " + f.label)
		} else {
			parts[i] = styleOff.Render("[ ] " + f.label)
		}
	}
	return " " + strings.Join(parts, "  ")
}

func (m Model) listView(width int) string {
	h := m.listHeight()
	if len(m.rows) == 0 {
		return styleMuted.Render("No matches") + strings.Repeat("\n", h)
	}

	end := min(m.offset+h, len(m.rows))
	pathW, nameW := len("PATH"), len("NAME")
	for _, r := range m.rows[m.offset:end] {
		pathW = max(pathW, lipgloss.Width(r.Path))
		nameW = max(nameW, lipgloss.Width(r.ColumnText(result.ColumnName)))
	}
	pathW = min(pathW, width/2)
	nameW = min(nameW, width/4)

	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("      %-*s  %-*s  %s", pathW, "PATH", nameW, "NAME", "DATA")))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		mark := " "
		if m.selected[i] {
			mark = styleSelected.Render("*")
		}
		line := fmt.Sprintf("%s  %-*s  %-*s  %s", format.Glyph(r.Kind(), true),
			pathW, cut(r.Path, pathW), nameW, cut(r.ColumnText(result.ColumnName), nameW),
			cut(r.Data, max(width-pathW-nameW-12, 8)))
		if i == m.cursor && m.focus == focusList {
			line = styleCursor.Render(line)
		}
		b.WriteString("\n " + mark + "  " + line)
	}
	return b.String()
}

func cut(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) statusLine() string {
	state := m.ctrl.State().String()
	if m.inFlight && state == findall.Idle.String() {
		state = findall.Searching.String()
	}
	left := fmt.Sprintf(" %s | %d match(es)", state, len(m.rows))
	if n := len(m.selection()); n > 0 {
		left += fmt.Sprintf(" | %d selected", n)
	}
	if m.status == "" {
		return left
	}
	msg := m.status
	if m.statusErr {
		msg = styleError.Render(msg)
	}
	return left + " | " + msg
}

func (m Model) helpLine() string {
	bindings := []key.Binding{Keys.Find, Keys.Focus, Keys.Cancel, Keys.Select, Keys.Delete,
		Keys.DeleteAll, Keys.SortPath, Keys.Copy, Keys.Save, Keys.Quit}
	if m.focus == focusList {
		bindings[0] = Keys.GoTo
	}
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return " " + strings.Join(parts, " · ") + " · alt+k/v/d/w/c/s/r/a options"
}

// Run opens the dialog and blocks until it is closed.
func Run(ctx context.Context, svc service.Service, opts Options) error {
	m, err := New(ctx, svc, opts)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.err
	}
	return nil
}

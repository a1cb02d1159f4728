package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/quark/cli/cmd"
	"github.com/ardnew/quark/log"
	"github.com/ardnew/quark/pipeline"
)

// Repl starts an interactive session. Each entry is compiled to Markdown
// against the same context, so definitions carry over between entries.
type Repl struct {
	Source     cmd.Source `arg:"" help:"Document compiled before the session starts." optional:""`
	WorkingDir string     `       help:"Directory relative paths resolve against (default: current directory)." type:"existingdir"`
	SearchPath []string   `       help:"Additional directories searched by .include."`
	History    string     `       help:"History file."                                default:"${cache}/history.utf8" type:"path"`
	Preview    bool       `       help:"Style results as rendered Markdown."          default:"true"                  negatable:""`
}

// Run starts the REPL and blocks until the user quits.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.Default()

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", r.History),
		slog.Bool("has_source", r.Source != ""),
		slog.Bool("preview", r.Preview),
	)

	s := newSession(logger, r.preview(ctx, logger, defaultWidth), r.options()...)

	if r.Source != "" {
		src, err := r.Source.Read(ctx)
		if err != nil {
			return err
		}

		if _, err := s.eval(ctx, src); err != nil {
			return err
		}

		logger.TraceContext(ctx, "repl source loaded",
			slog.String("source", string(r.Source)),
		)
	}

	history := NewHistory(r.History)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("file", r.History),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, s, history, logger)
	m.previewEnabled = r.Preview

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

func (r *Repl) options() []pipeline.Option {
	wd := r.WorkingDir
	if wd == "" {
		if cwd, err := os.Getwd(); err == nil {
			wd = cwd
		}
	}

	return []pipeline.Option{
		pipeline.WithWorkingDirectory(wd),
		pipeline.WithSearchPath(r.SearchPath...),
	}
}

// preview returns nil when previews are disabled or unavailable.
func (r *Repl) preview(
	ctx context.Context,
	logger log.Logger,
	width int,
) *glamour.TermRenderer {
	if !r.Preview {
		return nil
	}

	tr, err := newPreview(width)
	if err != nil {
		logger.WarnContext(ctx, "preview disabled", slog.Any("error", err))

		return nil
	}

	return tr
}

// editDoneMsg is sent when an edited document compiled.
type editDoneMsg struct{ text, output string }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a
// compile error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process fails outside compilation.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help           Print this cruft
  list           List functions and their signatures
  edit           Compile a multi-line document written in $EDITOR
  source         Print every entry compiled so far
  source <file>  Compile a document file into the session
  clear          Clear screen
  quit           Exit REPL

Usage:
  Type Markdown to compile it; call functions with .name {arg} {arg}
  Functions and variables defined by one entry are visible to the next
  Completions appear after a dot as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Use Alt+Up/Alt+Down to switch to command mode and navigate command history
    (restores original mode when reaching end of history)
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// echo formats the submitted input with the prompt of its mode.
func echo(mode inputMode, input string) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc        func() context.Context
	input          textinput.Model
	session        *session
	logger         log.Logger
	history        *History
	historyIdx     int
	matches        fuzzy.Matches // current fuzzy match results
	candidates     []string      // backing candidate list
	wordStart      int           // byte offset of current word start
	wordEnd        int           // byte offset of current word end
	suggIdx        int           // selected candidate index
	tabActive      bool          // whether user is tab-cycling
	preTabText     string        // input text before tab-cycling began
	preTabCursor   int           // cursor position before tab-cycling began
	altNav         *savedInput   // state before Alt+Up/Down navigation began
	lastEdit       string        // text of the last document compiled via edit
	width          int           // terminal width for ellipsization
	previewEnabled bool
	quitting       bool
	mode           inputMode
	saved          [2]savedInput // per-mode input, indexed by inputMode
}

// savedInput is the text and cursor of an input line set aside.
type savedInput struct {
	mode   inputMode
	text   string
	cursor int
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	s *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    s,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		if m.previewEnabled && m.session != nil {
			if tr, err := newPreview(msg.Width); err == nil {
				m.session.preview = tr
			}
		}

		return m, nil

	case editDoneMsg:
		m.lastEdit = msg.text
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl edit complete",
			slog.Int("length", len(msg.text)),
		)

		return m, tea.Println(m.result(msg.output))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("🗴 edit cancelled."))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("🗴 edit discarded."))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("🗴 error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hint())
	b.WriteString("\n")

	return b.String()
}

// hint returns the line shown beneath the input.
func (m model) hint() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type Markdown or press Esc for commands")
		}

		return hintStyle.Render(
			"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)",
		)
	}

	if m.mode == modeEval && len(m.matches) == 0 {
		call := detectFunctionCall(input, m.input.Position())
		if call.inCall {
			if params, ok := getSignature(m.session.context(), call.name); ok {
				return renderSignatureHint(call.name, params, call.argIndex)
			}
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
}

// result formats compiled output for printing.
func (m model) result(out string) string {
	text := m.session.display(out)
	if text == "" {
		return hintStyle.Render("✔")
	}

	if m.session.preview == nil {
		return resultStyle.Render(text)
	}

	return text
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode
	m.saved = [2]savedInput{}
	m.input.SetValue("")

	if err := m.history.Add(input, mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history not saved", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl input",
		slog.Int("mode", int(mode)),
		slog.String("input", input),
	)

	if mode == modeCtrl {
		return m.executeCommand(input)
	}

	echoCmd := tea.Println(echo(modeEval, input))

	out, err := m.session.eval(m.ctxFunc(), input)
	if err != nil {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(echoCmd, tea.Println(m.result(out)))
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(echo(modeCtrl, input))

	name, args := parts[0], parts[1:]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echoCmd, tea.Println(m.listFunctions()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "s", "source":
		if len(args) == 0 {
			return m, tea.Sequence(echoCmd, tea.Println(m.session.source()))
		}

		return m, tea.Sequence(echoCmd, m.sourceFile(args[0]))

	case "e", "edit":
		return m, tea.Sequence(echoCmd, m.handleEdit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + name + " (try 'help')"),
		)
	}
}

// sourceFile compiles the document at path into the session.
func (m model) sourceFile(path string) tea.Cmd {
	ctx := m.ctxFunc()

	src, err := cmd.Source(path).Read(ctx)
	if err == nil {
		var out string
		if out, err = m.session.eval(ctx, src); err == nil {
			return tea.Println(m.result(out))
		}
	}

	return tea.Println(errorStyle.Render("error: " + err.Error()))
}

func (m model) handleEdit() tea.Cmd {
	ec := &editCommand{
		initial: m.lastEdit,
		compile: func(text string) (string, error) {
			return m.session.eval(m.ctxFunc(), text)
		},
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(ec, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case ec.text == "":
			return editCancelledMsg{}
		}

		return editDoneMsg{text: ec.text, output: ec.output}
	})
}

func (m model) listFunctions() string {
	var b strings.Builder

	for _, sig := range m.session.signatures() {
		name, params, _ := strings.Cut(sig, " ")
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(params))
	}

	return b.String()
}

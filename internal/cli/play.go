package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/account"
	"github.com/SeamusWaldron/cubeplay/internal/leaderboard"
	"github.com/SeamusWaldron/cubeplay/internal/session"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var playUser string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Log in and play",
	Long: `Open the cube in the terminal. Log in first; your saved game is
resumed where you left it.

Press ? in the game for the key guide. Register with 'cubeplay user register'.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVarP(&playUser, "username", "u", "", "Username to fill in (default: last player)")
}

type screen int

const (
	screenLogin screen = iota
	screenNet
	screenGuide
	screenLeaderboard
	screenHistory
)

// Messages
type (
	tickMsg      time.Time
	autosaveMsg  struct{}
	solveStepMsg struct{ gen int }
)

const (
	tickInterval = 100 * time.Millisecond
	historyRows  = 15
	movesShown   = 20
)

// playOptions carries what the model needs besides the database.
type playOptions struct {
	stateFile     *session.StateFile
	eventDir      string
	solveDuration time.Duration
	autosave      time.Duration
	gameOpts      []cubeplay.Option
	accountOpts   []account.Option
}

type playModel struct {
	db       *storage.DB
	accounts *account.Service
	opts     playOptions

	screen screen

	// Login form
	username string
	password string
	field    int

	sess      *session.Session
	events    *session.EventLog
	solveGen  int
	solvePace time.Duration

	board   []leaderboard.Entry
	history []storage.AttemptRecord

	message  string
	err      error
	logPath  string
	quitting bool
}

func newPlayModel(db *storage.DB, username string, opts playOptions) *playModel {
	if opts.solveDuration <= 0 {
		opts.solveDuration = cubeplay.DefaultSolveDuration
	}
	m := &playModel{
		db:       db,
		accounts: account.NewService(db, opts.accountOpts...),
		opts:     opts,
		screen:   screenLogin,
		username: username,
	}
	if username != "" {
		m.field = 1
	}
	return m
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) autosaveCmd() tea.Cmd {
	if m.opts.autosave <= 0 {
		return nil
	}
	return tea.Tick(m.opts.autosave, func(time.Time) tea.Msg {
		return autosaveMsg{}
	})
}

func (m *playModel) solveStepCmd() tea.Cmd {
	gen := m.solveGen
	return tea.Tick(m.solvePace, func(time.Time) tea.Msg {
		return solveStepMsg{gen: gen}
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.screen == screenLogin {
			return m.updateLogin(msg)
		}
		m.events.LogKeyPress(msg.String())
		return m.updateGame(msg)

	case tickMsg:
		if m.sess == nil {
			return m, nil
		}
		res, err := m.sess.Tick()
		if err != nil {
			m.err = err
		}
		if res != nil {
			m.message = solvedMessage(res)
		}
		return m, m.tickCmd()

	case autosaveMsg:
		if m.sess == nil {
			return m, nil
		}
		if err := m.sess.Save(); err != nil {
			log.WithError(err).Warn("autosave failed")
			m.err = err
		}
		return m, m.autosaveCmd()

	case solveStepMsg:
		if m.sess == nil || msg.gen != m.solveGen || !m.sess.Game().Solving() {
			return m, nil
		}
		if m.sess.Step() {
			return m, m.solveStepCmd()
		}
		m.message = "Solver finished"
	}

	return m, nil
}

func (m *playModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyTab, tea.KeyUp, tea.KeyDown:
		m.field = 1 - m.field

	case tea.KeyBackspace:
		if m.field == 0 && m.username != "" {
			m.username = m.username[:len(m.username)-1]
		} else if m.field == 1 && m.password != "" {
			m.password = m.password[:len(m.password)-1]
		}

	case tea.KeyEnter:
		if m.field == 0 {
			m.field = 1
			return m, nil
		}
		return m, m.login()

	case tea.KeyRunes, tea.KeySpace:
		if m.field == 0 {
			m.username += string(msg.Runes)
		} else {
			m.password += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *playModel) login() tea.Cmd {
	name := strings.TrimSpace(m.username)
	err := m.accounts.Authenticate(name, m.password)
	m.password = ""
	switch {
	case errors.Is(err, account.ErrUserNotFound):
		m.err = fmt.Errorf("no player called %q; register with 'cubeplay user register'", name)
		m.field = 0
		return nil
	case errors.Is(err, account.ErrBadCredentials):
		m.err = errors.New("wrong password")
		return nil
	case err != nil:
		m.err = err
		return nil
	}

	opts := []session.Option{session.WithGameOptions(m.opts.gameOpts...)}
	if m.opts.stateFile != nil {
		opts = append(opts, session.WithStateFile(m.opts.stateFile))
	}
	if m.opts.eventDir != "" {
		events, err := session.StartEventLog(m.opts.eventDir, name)
		if err != nil {
			log.WithError(err).Warn("could not start event log")
		} else {
			m.events = events
			opts = append(opts, session.WithEventLog(events))
		}
	}

	sess, err := session.Open(m.db, name, opts...)
	if err != nil {
		m.err = err
		return nil
	}

	m.sess = sess
	m.username = name
	m.screen = screenNet
	m.err = nil
	m.message = fmt.Sprintf("Welcome, %s. Press M to scramble or ? for the guide.", name)
	log.WithField("user", name).Info("logged in")

	cmds := []tea.Cmd{m.tickCmd(), m.autosaveCmd()}
	if sess.Game().Solving() {
		// A saved solver run picks up where it stopped.
		cmds = append(cmds, m.startSolveSteps())
	}
	return tea.Batch(cmds...)
}

func (m *playModel) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := lookupKey(msg.String())
	m.err = nil

	switch b.act {
	case actQuit:
		return m, m.quit()

	case actMove:
		if m.screen == screenGuide {
			return m, nil
		}
		if err := m.sess.Apply(b.move); err != nil {
			m.err = err
		}
		m.message = ""

	case actScramble:
		if err := m.sess.Scramble(); err != nil {
			m.err = err
		}
		m.solveGen++
		m.screen = screenNet
		m.message = fmt.Sprintf("Scrambled with %d moves. The clock is running.", m.sess.Game().ScramblerCount())

	case actSolve:
		if m.sess.Game().Solving() {
			return m, nil
		}
		if err := m.sess.StartSolve(); err != nil {
			m.err = err
		}
		if m.sess.Remaining() == 0 {
			m.sess.StopSolving()
			m.message = "Nothing to solve"
			return m, nil
		}
		m.screen = screenNet
		m.message = "Solving..."
		return m, m.startSolveSteps()

	case actHint:
		if m.sess.Hint() {
			m.message = "Hint: undid your last move"
		} else {
			m.message = "Nothing to undo"
		}

	case actLeaderboard:
		if m.screen == screenLeaderboard {
			m.screen = screenNet
			return m, nil
		}
		board, err := m.sess.Leaderboard()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.board = board
		m.screen = screenLeaderboard

	case actHistory:
		if m.screen == screenHistory {
			m.screen = screenNet
			return m, nil
		}
		history, err := m.sess.History(historyRows)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.history = history
		m.screen = screenHistory

	case actGuide:
		if m.screen == screenGuide {
			m.screen = screenNet
		} else {
			m.screen = screenGuide
		}
	}

	return m, nil
}

// startSolveSteps paces the solver so the whole run takes about the
// configured solve duration.
func (m *playModel) startSolveSteps() tea.Cmd {
	m.solveGen++
	m.solvePace = cubeplay.SolvePace(m.opts.solveDuration, m.sess.Remaining())
	return m.solveStepCmd()
}

func (m *playModel) quit() tea.Cmd {
	m.quitting = true
	if m.events != nil {
		m.logPath = m.events.FilePath()
	}
	if err := m.sess.Close(); err != nil {
		log.WithError(err).Error("failed to save game")
		m.err = err
	}
	return tea.Quit
}

func solvedMessage(res *session.Result) string {
	msg := fmt.Sprintf("Solved in %s with %d moves!", formatDuration(res.Attempt.Duration), res.Attempt.Moves)
	switch {
	case res.Rank > 0:
		msg += fmt.Sprintf(" Leaderboard position %d.", res.Rank)
	case !session.Eligible(res.Attempt):
		msg += " Hints were used, so it stays off the leaderboard."
	}
	return msg
}

func (m *playModel) View() string {
	if m.quitting {
		msg := "Goodbye!\n"
		if m.err != nil {
			msg += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
		}
		if m.logPath != "" {
			msg += fmt.Sprintf("Log saved to: %s\n", m.logPath)
		}
		return msg
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cubeplay"))
	if m.sess != nil {
		b.WriteString(statusStyle.Render("  " + m.sess.User()))
	}
	b.WriteString("\n\n")

	switch m.screen {
	case screenLogin:
		m.viewLogin(&b)
	case screenNet:
		m.viewGame(&b)
	case screenGuide:
		b.WriteString(guideText)
		b.WriteString("\n")
	case screenLeaderboard:
		writeLeaderboard(&b, m.board)
	case screenHistory:
		writeHistory(&b, m.history)
	}

	if m.message != "" && m.screen != screenLogin {
		b.WriteString("\n")
		b.WriteString(m.message)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "Moves: T G B R F V Q W E A S D X Y Z | M scramble K solve H hint | L board P history ? guide | Esc quit"
	if m.screen == screenLogin {
		help = "Tab switch field | Enter log in | Esc quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func (m *playModel) viewLogin(b *strings.Builder) {
	b.WriteString("Log in\n\n")

	cursor := func(i int) string {
		if m.field == i {
			return "> "
		}
		return "  "
	}
	fmt.Fprintf(b, "%sUsername: %s\n", cursor(0), m.username)
	fmt.Fprintf(b, "%sPassword: %s\n", cursor(1), strings.Repeat("*", len([]rune(m.password))))
}

func (m *playModel) viewGame(b *strings.Builder) {
	g := m.sess.Game()
	c := g.Cube()

	state := ""
	switch {
	case g.Solving():
		state = timerStyle.Render("SOLVING")
	case g.Timing():
		state = timerStyle.Render("TIMING")
	case g.Solved():
		state = solvedStyle.Render("SOLVED!")
	}
	fmt.Fprintf(b, "Time: %s  %s\n", timerStyle.Render(formatDuration(g.Elapsed())), state)
	fmt.Fprintf(b, "Moves: %d  Scramble: %d  Faces solved: %d/6\n",
		g.UserMoves(), g.ScramblerCount(), c.SolvedFaces())
	if g.HintsUsed() || g.SolverUsed() {
		var used []string
		if g.HintsUsed() {
			used = append(used, "hints")
		}
		if g.SolverUsed() {
			used = append(used, "solver")
		}
		b.WriteString(statusStyle.Render("Used: " + strings.Join(used, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderNet(&c))

	if moves := g.Moves(); len(moves) > 0 {
		b.WriteString("\n")
		b.WriteString(moveStyle.Render(recentMoves(moves, movesShown)))
		b.WriteString("\n")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stateFile, err := session.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if err := stateFile.SetDBPath(getDBPathOrDefault()); err != nil {
		log.WithError(err).Warn("failed to update state file")
	}

	eventDir, err := cfg.EventLogPath()
	if err != nil {
		return err
	}

	restore, err := redirectLog()
	if err != nil {
		return err
	}
	defer restore()

	name := playUser
	if name == "" {
		name = stateFile.LastUser()
	}

	model := newPlayModel(db, name, playOptions{
		stateFile:     stateFile,
		eventDir:      eventDir,
		solveDuration: cfg.SolveDuration,
		autosave:      cfg.AutosaveInterval,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pickmany/internal/config"
	"pickmany/internal/domain"
	"pickmany/internal/eventbus"
	"pickmany/internal/prompt"
	"pickmany/internal/prompt/filter"
	"pickmany/internal/prompt/selection"
	"pickmany/internal/ui"
	"pickmany/internal/ui/views"
)

// Exit codes
const (
	ExitOK        = 0
	ExitSkipped   = 1
	ExitError     = 2
	ExitCancelled = 130
)

// Driver runs a started prompt session to completion
type Driver func(session ui.Session, opts ui.Options) error

// App carries the process streams so the command can be exercised in tests
type App struct {
	Stdin           io.Reader
	Stdout          io.Writer
	Stderr          io.Writer
	StdinIsTerminal func() bool
	Drive           Driver
}

type flags struct {
	message    string
	defaults   []int
	cursor     int
	pageSize   int
	vim        bool
	keepFilter bool
	create     bool
	fuzzy      bool
	noHelp     bool
	min        int
	max        int
	index      bool
	configPath string
	logPath    string
	initConfig bool
}

// exitError carries a non-zero exit code out of cobra
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// Execute runs the command against the process streams and returns the exit code
func Execute() int {
	app := &App{
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		StdinIsTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		Drive:           driveTerminal,
	}
	return app.Run(os.Args[1:])
}

// Run executes the command with the given arguments and returns the exit code
func (a *App) Run(args []string) int {
	cmd := a.NewCommand()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			fmt.Fprintf(a.Stderr, "pickmany: %v\n", exitErr.err)
		}
		return exitErr.code
	}
	fmt.Fprintf(a.Stderr, "pickmany: %v\n", err)
	return ExitError
}

// NewCommand builds the root command
func (a *App) NewCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "pickmany [flags] [option ...]",
		Short: "Interactively pick any number of options",
		Long: "pickmany shows a filterable checklist on the terminal and prints the\n" +
			"checked options to stdout, one per line. Options come from the\n" +
			"arguments or, when there are none, from the lines of stdin.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.message, "message", "m", "", "prompt message")
	fl.IntSliceVarP(&f.defaults, "default", "d", nil, "indices checked initially")
	fl.IntVar(&f.cursor, "cursor", 0, "starting cursor index")
	fl.IntVar(&f.pageSize, "page-size", 0, "rows per page")
	fl.BoolVar(&f.vim, "vim", false, "use j/k to move instead of filtering")
	fl.BoolVar(&f.keepFilter, "keep-filter", true, "keep the filter text after a selection")
	fl.BoolVar(&f.create, "create", false, "allow creating options from the filter text")
	fl.BoolVar(&f.fuzzy, "fuzzy", false, "fuzzy filter instead of substring")
	fl.BoolVar(&f.noHelp, "no-help", false, "hide the help line")
	fl.IntVar(&f.min, "min", 0, "minimum number of checked options")
	fl.IntVar(&f.max, "max", 0, "maximum number of checked options (0 for no limit)")
	fl.BoolVar(&f.index, "index", false, "print \"index<TAB>value\" instead of the value")
	fl.StringVar(&f.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	fl.StringVar(&f.logPath, "log", "", "append debug logs to this file")
	fl.BoolVar(&f.initConfig, "init-config", false, "write the default config file and exit")

	return cmd
}

func (a *App) run(cmd *cobra.Command, f *flags, args []string) error {
	closeLog, err := setupLogging(f.logPath)
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}
	defer closeLog()

	bus := eventbus.New()
	bus.Subscribe(eventbus.EventPromptFinished, func(e eventbus.DomainEvent) {
		if event, ok := e.(domain.PromptFinishedEvent); ok {
			log.Printf("Prompt %s with %d option(s) checked", event.Outcome, event.Selected)
		}
	})
	configSvc := config.NewConfigServiceWithBus(bus)

	if f.initConfig {
		path := f.configPath
		if path == "" {
			path = configSvc.Path()
		}
		if err := configSvc.SaveToPath(config.DefaultConfig(), path); err != nil {
			return &exitError{code: ExitError, err: err}
		}
		fmt.Fprintln(a.Stdout, path)
		return nil
	}

	var cfg *config.Config
	if f.configPath != "" {
		cfg, err = configSvc.LoadFromPath(f.configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}
	applyFlags(cmd, f, cfg)
	if err := cfg.Validate(); err != nil {
		return &exitError{code: ExitError, err: err}
	}

	options, err := a.readOptions(args)
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}

	ms := newMultiSelect(cfg, f, options, bus)
	p, err := ms.Start()
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}

	uiOpts := ui.Options{
		VimMode:  cfg.Prompt.VimMode,
		KeyHelp:  cfg.UI.KeyHelp,
		MaxWidth: cfg.UI.MaxWidth,
		View: views.Options{
			Cursor:    cfg.UI.Cursor,
			Checked:   cfg.UI.Checked,
			Unchecked: cfg.UI.Unchecked,
			Color:     cfg.UI.Color,
		},
	}
	if err := a.Drive(p, uiOpts); err != nil {
		return &exitError{code: ExitError, err: err}
	}

	switch p.Status() {
	case prompt.StatusSkipped:
		return &exitError{code: ExitSkipped}
	case prompt.StatusCancelled:
		return &exitError{code: ExitCancelled}
	case prompt.StatusSubmitted:
	default:
		return &exitError{code: ExitError, err: fmt.Errorf("prompt ended in state %s", p.Status())}
	}

	out := bufio.NewWriter(a.Stdout)
	for _, s := range p.Answer() {
		if f.index {
			fmt.Fprintf(out, "%d\t%s\n", s.Index, s.Value)
		} else {
			fmt.Fprintln(out, s.Value)
		}
	}
	return out.Flush()
}

// applyFlags overrides the loaded config with every flag set on the command line
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("message") {
		cfg.Prompt.Message = f.message
	}
	if changed("page-size") {
		cfg.Prompt.PageSize = f.pageSize
	}
	if changed("vim") {
		cfg.Prompt.VimMode = f.vim
	}
	if changed("keep-filter") {
		cfg.Prompt.KeepFilter = f.keepFilter
	}
	if changed("create") {
		cfg.Prompt.Create = f.create
	}
	if changed("fuzzy") {
		cfg.Prompt.Fuzzy = f.fuzzy
	}
	if changed("no-help") {
		cfg.Prompt.ShowHelp = !f.noHelp
	}
	if changed("min") {
		cfg.Prompt.Min = f.min
	}
	if changed("max") {
		cfg.Prompt.Max = f.max
	}
}

func newMultiSelect(cfg *config.Config, f *flags, options []string, bus eventbus.EventBus) *prompt.MultiSelect[string] {
	ms := prompt.NewMultiSelect(cfg.Prompt.Message, options)
	ms.Default = f.defaults
	ms.StartingCursor = f.cursor
	ms.PageSize = cfg.Prompt.PageSize
	ms.VimMode = cfg.Prompt.VimMode
	ms.KeepFilter = cfg.Prompt.KeepFilter
	ms.Bus = bus
	if !cfg.Prompt.ShowHelp {
		ms.HelpMessage = ""
	}
	if cfg.Prompt.Fuzzy {
		ms.Filter = filter.Fuzzy[string]()
	}
	if cfg.Prompt.Create {
		ms.Dynamic = &filter.Dynamic[string]{
			Condition: filter.AbsentFrom[string](),
			Creator:   func(input string) (string, error) { return input, nil },
		}
	}

	var validators []selection.Validator[string]
	if cfg.Prompt.Min > 0 {
		validators = append(validators, selection.MinSelected[string](cfg.Prompt.Min))
	}
	if cfg.Prompt.Max > 0 {
		validators = append(validators, selection.MaxSelected[string](cfg.Prompt.Max))
	}
	if len(validators) > 0 {
		ms.Validator = selection.Chain(validators...)
	}
	return ms
}

// readOptions takes the options from the arguments, falling back to the
// non-empty lines of stdin when it is not a terminal
func (a *App) readOptions(args []string) ([]string, error) {
	if len(args) > 0 || a.StdinIsTerminal() {
		return args, nil
	}

	var options []string
	scanner := bufio.NewScanner(a.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		options = append(options, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options from stdin: %w", err)
	}
	return options, nil
}

func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(logFile)
	return func() { logFile.Close() }, nil
}

// driveTerminal runs the bubbletea front end. The prompt is drawn on stderr
// and keys are read from the controlling terminal so that stdin and stdout
// stay free for pipelines.
func driveTerminal(session ui.Session, opts ui.Options) error {
	input := os.Stdin
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		input = tty
	} else {
		log.Printf("Could not open /dev/tty, reading keys from stdin: %v", err)
	}

	if os.Getenv("PICKMANY_E2E_TEST") != "" {
		fmt.Fprintln(os.Stderr, "__READY__")
	}

	_, err := ui.Run(session, opts, tea.WithInput(input), tea.WithOutput(os.Stderr))
	return err
}

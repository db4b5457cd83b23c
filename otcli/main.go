package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontres"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.tyse.fonts": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontdir := flag.String("dir", "", "Font directory to scan instead of system font directories")
	lazy := flag.Bool("lazy", false, "Defer font directory scan to first use")
	flag.Parse()
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	pterm.Info.Println("Welcome to the font resolver CLI") // colored welcome message
	//
	// set up font library
	var opts []fontres.Option
	if *fontdir != "" {
		opts = append(opts, fontres.WithSearchPaths(*fontdir))
	}
	if *lazy {
		opts = append(opts, fontres.WithLazyScan())
	}
	lib, err := fontres.New(opts...)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	defer lib.Close()
	//
	// set up REPL
	repl, err := readline.New("fonts > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, lib: lib}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                              // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	lib  *fontres.Library
	repl *readline.Instance
	last string // typeface key of last resolution
}

func (intp *Intp) String() string {
	if intp == nil || intp.last == "" {
		return "()"
	}
	return fmt.Sprintf("( typeface=%s )", intp.last)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	RESOLVE
	CREATE
	ADD
	SNIFF
	FAMILIES
	STYLES
	SOURCES
	CACHE
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"resolve":  RESOLVE,
	"create":   CREATE,
	"add":      ADD,
	"sniff":    SNIFF,
	"families": FAMILIES,
	"styles":   STYLES,
	"sources":  SOURCES,
	"cache":    CACHE,
}

var opNames = []string{
	"quit",
	"help",
	"resolve",
	"create",
	"add",
	"sniff",
	"families",
	"styles",
	"sources",
	"cache",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

// parseCommand splits a line into steps separated by blanks. A step is an
// op-code with optional argument and format, separated by colons,
// e.g. "resolve:Go:bi", "create:Go:12" or "styles:Go".
// Family names containing blanks are written with underscores.
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, errors.New("too many steps in command")
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":")
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		command.op[i].arg = strings.ReplaceAll(getOptArg(c, 1), "_", " ")
		command.op[i].format = getOptArg(c, 2)
		tracer().Debugf("%s: argument '%s'", opNames[code], command.op[i].arg)
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	RESOLVE:  resolveOp,
	CREATE:   createOp,
	ADD:      addOp,
	SNIFF:    sniffOp,
	FAMILIES: familiesOp,
	STYLES:   stylesOp,
	SOURCES:  sourcesOp,
	CACHE:    cacheOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// ----------------------------------------------------------------------

var errNoArg = errors.New("command needs an argument")

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}

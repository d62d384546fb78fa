package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/ctxsubst"
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
	fontname := flag.String("font", "", "Font file to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the contextual substitution CLI")
	//
	// set up REPL
	repl, err := readline.New("ctx > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
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
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
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
	font *ctxsubst.Font
	repl *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
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
	LOOKUPS
	RULES
	MATCH
	TEXT
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"lookups": LOOKUPS,
	"rules":   RULES,
	"match":   MATCH,
	"text":    TEXT,
}

var opNames = []string{
	"quit",
	"help",
	"lookups",
	"rules",
	"match",
	"text",
}

// parseCommand splits a line into ops, e.g. "lookups rules:3" or
// "match:3:10,20,30". A text op takes the rest of the line as its text,
// spaces included.
func parseCommand(line string) (*Command, error) {
	command := &Command{}
	for i := range command.op {
		command.op[i].code = NOOP
	}
	steps := strings.Fields(line)
	for i := 0; i < len(steps); i++ {
		if command.count == len(command.op) {
			return nil, errors.New("too many commands in one line")
		}
		step := steps[i]
		c := strings.SplitN(step, ":", 3) // e.g. "rules:5" or "match:5:1,2,3" or "help:flags"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		op := &command.op[command.count]
		command.count++
		op.code = code
		if code == QUIT {
			return command, nil
		}
		op.arg = getOptArg(c, 1)
		op.format = getOptArg(c, 2)
		if code == TEXT {
			if rest := steps[i+1:]; len(rest) > 0 {
				op.format = strings.Join(append([]string{op.format}, rest...), " ")
			}
			return command, nil
		}
		tracer().Debugf("parsed command: %s %q %q", opNames[code], op.arg, op.format)
	}
	return command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	LOOKUPS: lookupsOp,
	RULES:   rulesOp,
	MATCH:   matchOp,
	TEXT:    textOp,
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

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(path string) (err error) {
	if path == "" {
		return errors.New("no font given, use flag -font")
	}
	if intp.font, err = ctxsubst.LoadFont(path); err != nil {
		tracer().Errorf("cannot load font %s: %s", path, err)
		return
	}
	family, subfamily := ctxsubst.FamilyName(intp.font)
	pterm.Printf("font %s (%s %s) has %d contextual lookups\n", intp.font.Name(),
		family, subfamily, len(intp.font.ContextLookups()))
	return
}

// ----------------------------------------------------------------------

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

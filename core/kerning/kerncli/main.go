/*
Command kerncli is an interactive shell for querying and transforming the
kerning of a font.

	kerncli [-snapshot demo.yaml | -font Arial] [-trace Debug]

Without a font, Go Sans Regular is loaded. Type `help` at the prompt for a
list of commands.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/kerntool/core/kerning/feature"
	"github.com/npillmayer/kerntool/core/kerning/fontsource"
	"github.com/npillmayer/kerntool/core/kerning/pairlist"
	"github.com/npillmayer/kerntool/core/kerning/query"
	"github.com/npillmayer/kerntool/core/kerning/session"
	"github.com/npillmayer/kerntool/core/kerning/transform"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'kerning.cli'
func tracer() tracing.Trace {
	return tracing.Select("kerning.cli")
}

var traceKeys = []string{"kerning.cli", "kerning.model", "kerning.query", "kerning.io",
	"kerning.transform", "kerning.fonts", "kerning.session"}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	snapshot := flag.String("snapshot", "", "Kerning snapshot (YAML) to load")
	fontname := flag.String("font", "", "Font to load")
	side1 := flag.String("side1-prefix", "", "Group prefix for side 1")
	side2 := flag.String("side2-prefix", "", "Group prefix for side 2")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"kerning.side1-prefix": *side1,
		"kerning.side2-prefix": *side2,
	}
	for _, key := range traceKeys {
		conf["trace."+key] = *tlevel
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to the kerning CLI") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	repl, err := readline.New("kern > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, sessions: session.NewRegistry(), prefixes: kerning.PrefixesFromConfig(conf)}
	//
	// load font to use
	if err := intp.loadFont(*snapshot, *fontname); err != nil {
		core.UserError(err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
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
	repl     *readline.Instance
	sessions *session.Registry
	current  *session.Session
	cmap     kerning.CharacterMap
	prefixes kerning.Prefixes
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
		cmd := parseCommand(line)
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Debugf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed input line: a keyword and the rest of the line.
type Command struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	GLYPHS
	PAIRS
	SPLIT
	VALID
	PAIRLIST
	RULES
	APPLY
	FEATURE
	SAVE
	FONTS
)

var keywords = map[string]int{
	"quit": QUIT, "exit": QUIT, "help": HELP, "glyphs": GLYPHS, "pairs": PAIRS,
	"split": SPLIT, "valid": VALID, "kpl": PAIRLIST, "rules": RULES, "apply": APPLY,
	"fea": FEATURE, "save": SAVE, "fonts": FONTS,
}

func parseCommand(line string) Command {
	word, arg := line, ""
	if i := strings.IndexByte(line, ' '); i > 0 {
		word, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	code, ok := keywords[strings.ToLower(word)]
	if !ok {
		return Command{code: HELP}
	}
	tracer().Debugf("command %s(%q)", word, arg)
	return Command{code: code, arg: arg}
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	f := intp.current.Font()
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
	case GLYPHS:
		glyphs, err := query.SearchGlyphs(cmd.arg, f)
		if err != nil {
			return false, err
		}
		pterm.Printfln("%d glyphs: %s", len(glyphs), strings.Join(glyphs, " "))
	case PAIRS:
		pairs, err := intp.current.Query(cmd.arg)
		if err != nil {
			return false, err
		}
		printPairs(f, pairs)
	case SPLIT:
		side1, side2, n := query.SplitPair(cmd.arg)
		pterm.Printfln("%d side(s): %q | %q", n, side1, side2)
	case VALID:
		opts := query.PairOptions{AllowGroups: true, AllowVariables: true}
		if err := query.ValidateKerningPair(cmd.arg, opts, f.Prefixes()); err != nil {
			return false, err
		}
		pterm.Printfln("%q is a valid kerning pair expression", cmd.arg)
	case PAIRLIST:
		return false, intp.pairList(cmd.arg)
	case RULES:
		rules, err := transform.ReadFile(cmd.arg)
		if err != nil {
			return false, err
		}
		intp.current.SetRules(rules)
		for _, r := range rules {
			pterm.Println(r.String())
		}
	case APPLY:
		before := len(f.Pairs())
		f, err := intp.current.Apply()
		if err != nil {
			return false, err
		}
		pterm.Printfln("%d pairs before, %d pairs after transformation", before, len(f.Pairs()))
	case FEATURE:
		return false, writeFeature(cmd.arg, f)
	case SAVE:
		if cmd.arg == "" {
			return false, core.Error(core.EMISSING, "save needs a file name")
		}
		return false, saveSnapshot(cmd.arg, f)
	case FONTS:
		intp.sessions.LogSessions()
		pterm.Printfln("open: %s, current: %s", strings.Join(intp.sessions.IDs(), ", "), intp.current.ID)
	}
	return false, nil
}

func (intp *Intp) loadFont(snapshot, fontname string) error {
	var f *kerning.Font
	name := "Go Sans"
	switch {
	case snapshot != "":
		s, err := kerning.LoadSnapshot(snapshot, intp.prefixes)
		if err != nil {
			return err
		}
		f, name = s, snapshot
	case fontname != "":
		path, err := fontsource.Locate(fontname)
		if err != nil {
			return err
		}
		otf, err := fontsource.Load(path, nil)
		if err != nil {
			return err
		}
		f, name = otf.Font, path
	default:
		f = fontsource.Fallback().Font
	}
	s, err := intp.sessions.Open(name, f)
	if err != nil {
		return err
	}
	intp.current, intp.cmap = s, f
	pterm.Printfln("font %q: %d glyphs, %d groups, %d kerning pairs", f.Name,
		len(f.GlyphOrder()), len(f.GroupNames()), len(f.Pairs()))
	return nil
}

// pairList loads a pair list, or shows the pairs of the current one.
func (intp *Intp) pairList(path string) error {
	if path != "" {
		l, err := pairlist.ReadFile(path, intp.cmap)
		if err != nil {
			return err
		}
		intp.current.SetPairList(l)
		pterm.Printfln("%s list %q with %d entries", l.Mode, l.Title, len(l.Entries))
		return nil
	}
	l := intp.current.PairList()
	if l == nil {
		return core.Error(core.EMISSING, "no pair list loaded")
	}
	printPairs(intp.current.Font(), l.Pairs())
	return nil
}

func printPairs(f kerning.KerningSource, pairs []kerning.Pair) {
	data := pterm.TableData{{"side 1", "side 2", "type", "value"}}
	for _, pair := range pairs {
		t1, t2 := f.PairType(pair)
		value := "-"
		if v, ok := f.Value(pair); ok {
			value = strconv.FormatFloat(v, 'f', -1, 64)
		}
		data = append(data, []string{pair.Side1, pair.Side2, t1.String() + "/" + t2.String(), value})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
	pterm.Printfln("%d pairs", len(pairs))
}

// writeFeature replaces the kern feature of a feature file by the kerning
// of f. Without a file name, the kern feature is printed.
func writeFeature(path string, f *kerning.Font) error {
	block := feature.KernBlock(f)
	if path == "" {
		pterm.Println(block)
		return nil
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read feature file %s", path)
	}
	return os.WriteFile(path, []byte(feature.ReplaceKernFeature(string(text), block)), 0644)
}

// saveSnapshot writes f to a snapshot file at path. A partially written
// file is removed.
func saveSnapshot(path string, f *kerning.Font) error {
	out, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", path)
	}
	if err = kerning.WriteSnapshot(out, f); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	if err = out.Close(); err != nil {
		os.Remove(path)
		return core.WrapError(err, core.EINVALID, "cannot write %s", path)
	}
	tracer().Infof("saved kerning of %s to %s", f.Name, path)
	return nil
}

var commands = map[string]string{
	"glyphs <list>": "search glyphs, e.g. `glyphs [O] or A*`",
	"pairs <pair>":  "select kerning pairs, e.g. `pairs exception, [V]`",
	"split <pair>":  "show the two sides of a kerning pair expression",
	"valid <pair>":  "check a kerning pair expression",
	"kpl [file]":    "load a pair list, or show the pairs of the loaded one",
	"rules <file>":  "load transformation rules",
	"apply":         "apply the loaded transformation rules",
	"fea [file]":    "print the kern feature, or replace it in a feature file",
	"save <file>":   "save the kerning as a YAML snapshot",
	"fonts":         "list open fonts",
	"quit":          "leave the CLI",
}

func help() {
	pterm.Info.Println("Commands")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	data := pterm.TableData{}
	for _, name := range names {
		data = append(data, []string{name, commands[name]})
	}
	if err := pterm.DefaultTable.WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

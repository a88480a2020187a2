// Command cfmt formats its arguments with the cfmt engine, like printf(1),
// and inspects format strings and builds.
//
// Usage:
//
//	cfmt [flags] FORMAT [ARG...]
//	cfmt -explain [-o FORMAT] [-border STYLE] [-indent N] FORMAT
//	cfmt -features [-o FORMAT] [-border STYLE] [-indent N]
//	cfmt -wasm FILE [-entry NAME]
//	cfmt -i
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bjaus/cfmt"
	"github.com/bjaus/cfmt/internal/report"
	"github.com/bjaus/cfmt/wasmhost"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	qerrors "github.com/qiniu/x/errors"
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var errUsage = errors.New("usage: cfmt [flags] FORMAT [ARG...]")

type options struct {
	size        int
	explain     bool
	features    bool
	output      report.Format
	layout      report.Layout
	interactive bool
	verbose     bool
	color       string
	wasm        string
	entry       string
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var (
		o      options
		output string
		border string
		indent int
	)
	fs := flag.NewFlagSet("cfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.size, "size", 0, "Format into a buffer of N bytes, truncating like snprintf")
	fs.BoolVar(&o.explain, "explain", false, "Describe the directives of FORMAT instead of formatting")
	fs.BoolVar(&o.features, "features", false, "Print the build configuration and exit")
	fs.StringVar(&output, "o", "table", "Report format for -explain and -features")
	fs.StringVar(&border, "border", "rounded", "Table border: rounded, ascii, heavy, double or none")
	fs.IntVar(&indent, "indent", 0, "Indent JSON and YAML reports by N spaces")
	fs.BoolVar(&o.interactive, "i", false, "Interactive mode with TUI")
	fs.BoolVar(&o.verbose, "v", false, "Log conversions to stderr")
	fs.StringVar(&o.color, "color", "auto", "Colorize errors: auto, always or never")
	fs.StringVar(&o.wasm, "wasm", "", "Run a wasm guest linked against the cfmt host module")
	fs.StringVar(&o.entry, "entry", "_start", "Function the -wasm guest is started with")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	f, err := report.ParseFormat(output)
	if err != nil {
		return o, nil, err
	}
	o.output = f
	if o.layout.Border, err = report.ParseBorder(border); err != nil {
		return o, nil, err
	}
	if indent < 0 {
		return o, nil, fmt.Errorf("invalid -indent %d", indent)
	}
	o.layout.Indent = strings.Repeat(" ", indent)
	switch o.color {
	case "auto", "always", "never":
	default:
		return o, nil, fmt.Errorf("invalid -color %q", o.color)
	}
	if o.size < 0 {
		return o, nil, fmt.Errorf("invalid -size %d", o.size)
	}
	return o, fs.Args(), nil
}

func main() {
	o, args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if o.interactive {
		if err := runInteractive(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log := newLogger(o.verbose, os.Stderr)
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), os.Stdout, os.Stderr, log, o, args); err != nil {
		printError(os.Stderr, err, useColor(o.color, os.Stderr))
		os.Exit(1)
	}
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.DebugLevel))
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printError(w io.Writer, err error, color bool) {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	label := r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render("Error:")
	fmt.Fprintf(w, "%s %v\n", label, err)
}

func run(ctx context.Context, stdout, stderr io.Writer, log *zap.Logger, o options, args []string) error {
	switch {
	case o.features:
		return writeFeatures(stdout, o.output, o.layout)
	case o.wasm != "":
		return runGuest(ctx, stdout, log, o.wasm, o.entry)
	case len(args) == 0:
		return errUsage
	case o.explain:
		return report.WriteSeq(stdout, o.output, report.ExplainWith(unescape(args[0]), o.layout))
	}

	format := unescape(args[0])
	fargs, err := convertArgs(format, args[1:], log)
	if err != nil {
		return err
	}
	if o.size > 0 {
		buf := make([]byte, o.size)
		n := cfmt.Vsnprintf(buf, format, fargs)
		if _, err := stdout.Write(buf[:min(n, o.size-1)]); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "cfmt: %d bytes, %d stored\n", n, min(n, o.size-1))
	} else {
		w := bufio.NewWriter(stdout)
		n := cfmt.Vpprintf(func(b byte) { _ = w.WriteByte(b) }, format, fargs)
		if err := w.Flush(); err != nil {
			return err
		}
		log.Debug("formatted", zap.Int("bytes", n))
	}
	return cfmt.Validate(format)
}

// featureDoc is the build configuration as one JSON or YAML document.
type featureDoc struct {
	cfmt.Config `yaml:",inline"`

	indent string
}

func (d featureDoc) Indent() string { return d.indent }

func writeFeatures(w io.Writer, f report.Format, l report.Layout) error {
	c := cfmt.Features()
	switch f {
	case report.JSON, report.YAML:
		return report.Write(w, f, featureDoc{Config: c, indent: l.Indent})
	}
	return report.Write(w, f, report.FeatureRows(c, l)...)
}

// runGuest runs a wasm guest whose cfmt imports print to stdout.
func runGuest(ctx context.Context, stdout io.Writer, log *zap.Logger, path, entry string) error {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return qerrors.NewWith(err, `os.ReadFile(path)`, -2, "os.ReadFile", path)
	}
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	h := wasmhost.New(wasmhost.WithConsole(stdout), wasmhost.WithLogger(log))
	if _, err := h.Instantiate(ctx, rt); err != nil {
		return fmt.Errorf("host module: %w", err)
	}
	mod, err := rt.InstantiateWithConfig(ctx, wasm, wazero.NewModuleConfig().WithStartFunctions())
	if err != nil {
		return fmt.Errorf("instantiate %s: %w", path, err)
	}
	fn := mod.ExportedFunction(entry)
	if fn == nil {
		return fmt.Errorf("%s: no exported function %q", path, entry)
	}
	_, err = fn.Call(ctx)
	return err
}

// convertArgs parses the command-line values in the order the directives
// of format read them. Surplus values are ignored and missing ones read
// as zero, as in the engine.
func convertArgs(format string, values []string, log *zap.Logger) ([]cfmt.Arg, error) {
	var out []cfmt.Arg
	for d, err := range cfmt.Directives(format) {
		if err != nil {
			break
		}
		for _, k := range d.Spec.Args() {
			if len(values) == 0 {
				return out, nil
			}
			a, err := convert(k, d, values[0], log)
			if err != nil {
				return nil, err
			}
			log.Debug("argument",
				zap.String("directive", d.Text),
				zap.Stringer("kind", k),
				zap.String("value", values[0]),
			)
			out = append(out, a)
			values = values[1:]
		}
	}
	return out, nil
}

func convert(k cfmt.Kind, d cfmt.Directive, s string, log *zap.Logger) (cfmt.Arg, error) {
	switch k {
	case cfmt.KindInt:
		if d.Spec.Verb == 'c' {
			r, _ := utf8.DecodeRuneInString(s)
			return cfmt.Char(r), nil
		}
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return cfmt.Arg{}, qerrors.NewWith(err, `strconv.ParseInt(s, 0, 64)`, -2, "strconv.ParseInt", s, 0, 64)
		}
		return cfmt.Int(v), nil
	case cfmt.KindUint, cfmt.KindPointer:
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			// Negative values wrap, as printf(1) does.
			if n, ierr := strconv.ParseInt(s, 0, 64); ierr == nil {
				return cfmt.Uint(uint64(n)), nil
			}
			return cfmt.Arg{}, qerrors.NewWith(err, `strconv.ParseUint(s, 0, 64)`, -2, "strconv.ParseUint", s, 0, 64)
		}
		return cfmt.Uint(v), nil
	case cfmt.KindFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return cfmt.Arg{}, qerrors.NewWith(err, `strconv.ParseFloat(s, 64)`, -2, "strconv.ParseFloat", s, 64)
		}
		return cfmt.Float(v), nil
	case cfmt.KindCount:
		return cfmt.CountTo(countLog{log: log, directive: d.Text}), nil
	}
	return cfmt.Str(s), nil
}

// countLog reports %n results instead of storing them.
type countLog struct {
	log       *zap.Logger
	directive string
}

func (c countLog) SetCount(n int64, size int) {
	c.log.Info("count", zap.String("directive", c.directive), zap.Int64("n", n), zap.Int("size", size))
}

// unescape expands the backslash escapes printf(1) accepts. Unknown
// escapes are kept as written.
func unescape(s string) string {
	out := make([]byte, 0, len(s))
	for len(s) > 0 {
		if s[0] != '\\' || len(s) == 1 {
			out = append(out, s[0])
			s = s[1:]
			continue
		}
		if s[1] == '"' || s[1] == '\'' {
			out = append(out, s[1])
			s = s[2:]
			continue
		}
		v, multibyte, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			out = append(out, s[:2]...)
			s = s[2:]
			continue
		}
		if multibyte {
			out = utf8.AppendRune(out, v)
		} else {
			out = append(out, byte(v))
		}
		s = tail
	}
	return string(out)
}

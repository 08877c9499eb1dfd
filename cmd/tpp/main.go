package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	goterm "golang.org/x/term"
	"pkt.systems/tpp"
	"pkt.systems/tpp/latex"
	"pkt.systems/tpp/term"
	"pkt.systems/tpp/txt"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/tpp")
}

func main() {
	var (
		textMode    bool
		latexMode   bool
		outPath     string
		timerSecs   int
		widthFlag   int
		showVersion bool
	)

	flags := pflag.NewFlagSet("tpp", pflag.ExitOnError)
	flags.BoolVarP(&textMode, "text", "t", false, "Export the presentation as plain text")
	flags.BoolVarP(&latexMode, "latex", "l", false, "Export the presentation as a LaTeX document")
	flags.StringVarP(&outPath, "output", "o", "", "Output file for exports instead of stdout")
	flags.IntVarP(&timerSecs, "timer", "s", 0, "Advance automatically every N seconds instead of on keypress")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Export width override (0 uses terminal width if available)")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: tpp [flags] <source>\n")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}

	args := flags.Args()
	if len(args) != 1 {
		flags.Usage()
		os.Exit(2)
	}
	if textMode && latexMode {
		fmt.Fprintln(os.Stderr, "choose one of --text and --latex")
		os.Exit(2)
	}
	path := args[0]

	if textMode || latexMode {
		if err := export(path, outPath, textMode, widthFlag); err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}
		return
	}

	c, err := term.NewController(path, tpp.ExecRunner{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(1)
	}
	if timerSecs > 0 {
		err = c.RunTimed(time.Duration(timerSecs) * time.Second)
	} else {
		err = c.RunInteractive()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "present: %v\n", err)
		os.Exit(1)
	}
}

func export(path, outPath string, textMode bool, widthFlag int) error {
	doc, err := tpp.LoadFile(path, tpp.ExecRunner{})
	if err != nil {
		return err
	}
	writer, closer, err := resolveOutput(outPath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	var backend tpp.Backend
	if textMode {
		backend = txt.New(writer,
			txt.WithWidth(resolveWidth(widthFlag)),
			txt.WithRunner(tpp.ExecRunner{}))
	} else {
		backend = latex.New(writer, latex.WithRunner(tpp.ExecRunner{}))
	}
	return tpp.Export(tpp.ExportRequest{Document: doc, Backend: backend})
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if goterm.IsTerminal(fd) {
		if w, _, err := goterm.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

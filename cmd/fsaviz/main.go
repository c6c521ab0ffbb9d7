// Command fsaviz compiles tagged patterns into automata. It exports the
// NFA or DFA as Graphviz DOT, scans an input, or generates a table-driven
// Go scanner.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"lindenmayer/internal/fsa"
	"lindenmayer/internal/fsa/syntax"
	"lindenmayer/internal/logging"
	"lindenmayer/internal/tablegen"
)

type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

func main() {
	var patterns arrayFlags
	flag.Var(&patterns, "p", "pattern=value, repeatable (required)")
	nfaFlag := flag.Bool("nfa", false, "export the Thompson NFA instead of the DFA")
	outFile := flag.String("o", "-", "DOT output file, - for stdout")
	pngFlag := flag.Bool("png", false, "render PNG via dot -Tpng")
	scanInput := flag.String("scan", "", "scan this input and print one token per line")
	genFile := flag.String("gen", "", "write a Go scanner to this file")
	genName := flag.String("name", "Tokens", "generated identifier prefix")
	genPkg := flag.String("pkg", "main", "generated package name")
	verbose := flag.Bool("v", false, "log construction details")
	flag.Parse()

	if len(patterns) == 0 {
		fmt.Fprintln(os.Stderr, "usage: fsaviz -p 'pattern=value' [-p ...] [-nfa] [-o file] [-png] [-scan input] [-gen file -name N -pkg P]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger := logging.New(*verbose)
	p, err := parsePatterns(patterns)
	if err != nil {
		fatal(err)
	}
	nfa, err := fsa.Compile[rune, string](p)
	if err != nil {
		fatal(err)
	}

	if *nfaFlag {
		var buf bytes.Buffer
		if err := nfa.WriteDOT(&buf); err != nil {
			fatal(err)
		}
		emit(&buf, *outFile, *pngFlag)
		return
	}

	dfa, err := nfa.ToDFA(fsa.WithLogger(logger))
	if err != nil {
		fatal(err)
	}

	switch {
	case *scanInput != "":
		toks, err := dfa.ScanTokens([]rune(*scanInput))
		if err != nil {
			fatal(err)
		}
		in := []rune(*scanInput)
		for _, t := range toks {
			fmt.Printf("%d:%d\t%q\t%s\n", t.Start, t.End, string(in[t.Start:t.End]), t.Value)
		}
	case *genFile != "":
		g := tablegen.New(tablegen.Config{Name: *genName, Package: *genPkg, OutputFile: *genFile}, dfa, logger)
		if err := g.Save(); err != nil {
			fatal(err)
		}
		fmt.Printf("scanner written to %s\n", *genFile)
	default:
		var buf bytes.Buffer
		if err := dfa.WriteDOT(&buf); err != nil {
			fatal(err)
		}
		emit(&buf, *outFile, *pngFlag)
	}
}

// parsePatterns reads pattern=value pairs. The value follows the last '='.
func parsePatterns(pairs []string) (fsa.Pattern[rune, string], error) {
	alts := make([]fsa.Pattern[rune, string], 0, len(pairs))
	for _, s := range pairs {
		i := strings.LastIndex(s, "=")
		if i < 0 {
			return nil, fmt.Errorf("%q: want pattern=value", s)
		}
		src, value := s[:i], s[i+1:]
		if value == "" {
			return nil, fmt.Errorf("%q: empty value", s)
		}
		p, err := syntax.ParseTagged(src, value)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", src, err)
		}
		alts = append(alts, p)
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return fsa.Alternation[rune, string]{Children: alts}, nil
}

func emit(buf *bytes.Buffer, outFile string, png bool) {
	if png {
		if outFile == "-" {
			fatal(errors.New("-png needs -o"))
		}
		cmd := exec.Command("dot", "-Tpng", "-o", outFile)
		cmd.Stdin = bytes.NewReader(buf.Bytes())
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			fatal(fmt.Errorf("dot failed: %w", err))
		}
		fmt.Printf("PNG written to %s\n", outFile)
		return
	}

	if err := writeDOT(buf, outFile); err != nil {
		fatal(err)
	}
	if outFile != "-" {
		fmt.Printf("DOT written to %s\n", outFile)
	}
}

// writeDOT copies buf to outFile, or to stdout for "-".
func writeDOT(buf *bytes.Buffer, outFile string) error {
	if outFile == "-" {
		_, err := io.Copy(os.Stdout, buf)
		return err
	}
	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", outFile, err)
	}
	if _, err := io.Copy(f, buf); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", outFile, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outFile, err)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fsaviz:", err)
	os.Exit(1)
}

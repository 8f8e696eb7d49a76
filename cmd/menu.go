package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/quickstats/core"
	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/schema"
	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

const (
	menuPrompt   = "Select an option (1-14, Enter to quit): "
	authorPrompt = "Which author? "
)

// LineReader reads one line of interactive input. It returns io.EOF once
// the user can no longer answer.
type LineReader interface {
	ReadLine(label string) (string, error)
}

// newLineReader prompts with promptui on a terminal and reads plain lines otherwise.
func newLineReader(in io.Reader, out io.Writer) LineReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return promptReader{}
	}
	return &scanReader{scanner: bufio.NewScanner(in), out: out}
}

// promptReader reads from the terminal with line editing.
type promptReader struct{}

var plainTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}",
	Valid:   "{{ . }}",
	Invalid: "{{ . }}",
	Success: "{{ . }}",
}

func (promptReader) ReadLine(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Templates: plainTemplates,
	}
	result, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", io.EOF
	}
	return result, err
}

// scanReader reads newline-terminated answers from a pipe or file.
type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *scanReader) ReadLine(label string) (string, error) {
	_, _ = fmt.Fprint(r.out, label)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// menuTheme colors the section headings and option numbers.
type menuTheme struct {
	section *color.Color
	number  *color.Color
}

func newMenuTheme(cfg *contract.Config) menuTheme {
	var th menuTheme
	switch cfg.Theme {
	case schema.LegacyTheme:
		th = menuTheme{
			section: color.New(color.FgCyan),
			number:  color.New(color.FgYellow),
		}
	default:
		th = menuTheme{
			section: color.New(color.FgHiBlue, color.Bold),
			number:  color.New(color.FgHiCyan, color.Bold),
		}
	}
	if !cfg.UseColors {
		th.section.DisableColor()
		th.number.DisableColor()
	}
	return th
}

// printMenu lists the catalog grouped by section, numbered from 1.
func printMenu(w io.Writer, th menuTheme) {
	_, _ = fmt.Fprintln(w)
	section := ""
	for i, r := range core.Catalog() {
		if r.Section != section {
			section = r.Section
			_, _ = fmt.Fprintf(w, "\n %s\n", th.section.Sprint(section))
		}
		_, _ = fmt.Fprintf(w, "   %s %s\n", th.number.Sprintf("%2d)", i+1), r.MenuLabel)
	}
	_, _ = fmt.Fprintln(w)
}

// runMenu shows the menu until the user enters nothing or input ends.
// A failing report is reported and the menu is shown again.
func (a *app) runMenu(ctx context.Context, w io.Writer, r LineReader) error {
	th := newMenuTheme(a.cfg)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		printMenu(w, th)

		line, err := r.ReadLine(menuPrompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		choice := strings.TrimSpace(line)
		if choice == "" {
			return nil
		}

		n, convErr := strconv.Atoi(choice)
		report, ok := core.ByMenuNumber(n)
		if convErr != nil || !ok {
			contract.LogWarn("Invalid selection", &contract.InvalidArgumentError{
				Reason: fmt.Sprintf("%q is not a menu option", choice),
			})
			continue
		}

		author := ""
		if report.NeedsAuthor {
			author, err = a.promptAuthor(r)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		if err := core.Execute(ctx, a.cfg, a.client, report.Name, author, w); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			contract.LogWarn("Report failed", err)
		}
	}
}

// promptAuthor asks until it gets a non-blank author. An empty answer
// falls back to the configured author when there is one.
func (a *app) promptAuthor(r LineReader) (string, error) {
	label := authorPrompt
	if a.cfg.Author != "" {
		label = fmt.Sprintf("Which author? [%s] ", a.cfg.Author)
	}
	for {
		line, err := r.ReadLine(label)
		if err != nil {
			return "", err
		}
		if author := strings.TrimSpace(line); author != "" {
			return author, nil
		}
		if a.cfg.Author != "" {
			return a.cfg.Author, nil
		}
	}
}

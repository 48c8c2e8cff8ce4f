package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"natbrowser/actor/qaactor"
	"natbrowser/browser"
	"natbrowser/browser/simplifier"
	"natbrowser/llm"
	"natbrowser/logging"
	"natbrowser/utils/printx"
)

func askCmd(root *rootOptions) *cobra.Command {
	var (
		url      string
		question string
		headful  bool
	)
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Answer questions about a page",
		Long: `Opens a page, renders what is visible and asks the model to answer a
question from it. Long pages are sent in chunks and every chunk that holds an
answer is printed. Without --question, questions are read from stdin until an
empty line, and the page is rendered again for each one.

Examples:
  natbot ask --url https://example.com/staff --question "Who is the principal?"
  natbot ask -u example.com/staff`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("headful") {
				cfg.Browser.Headful = headful
			}
			if url == "" {
				url = cfg.Browser.StartURL
			}
			apiKey, err := cfg.APIKey()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			model := llm.NewOpenAIChatModel(llm.ChatModelID(cfg.Model.Name), apiKey, cfg.Model.BaseURL)
			br := browser.NewBrowser(ctx, cfg.BrowserOptions())
			defer br.Close()

			a := &asker{
				page: br,
				qa:   qaactor.NewQAActor(model, cfg.QAOptions()),
				in:   bufio.NewScanner(cmd.InOrStdin()),
				out:  cmd.OutOrStdout(),
			}
			return a.run(ctx, url, question)
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "page to answer from (default from config)")
	cmd.Flags().StringVarP(&question, "question", "q", "", "question to answer; read from stdin when empty")
	cmd.Flags().BoolVar(&headful, "headful", false, "show the browser window")
	return cmd
}

// page is the part of *browser.Browser that ask drives.
type page interface {
	Navigate(url string) error
	Render() (*simplifier.Result, error)
}

type asker struct {
	page page
	qa   *qaactor.QAActor
	in   *bufio.Scanner
	out  io.Writer
}

// run visits url and answers question, or every question read from input
// when question is empty.
func (a *asker) run(ctx context.Context, url string, question string) error {
	if err := a.page.Navigate(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	if question != "" {
		return a.ask(ctx, question)
	}
	for {
		fmt.Fprintln(a.out, "What is your question? (enter to quit)")
		if !a.in.Scan() {
			return a.in.Err()
		}
		question := strings.TrimSpace(a.in.Text())
		if question == "" {
			return nil
		}
		if err := a.ask(ctx, question); err != nil {
			return err
		}
	}
}

func (a *asker) ask(ctx context.Context, question string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := a.page.Render()
	if err != nil {
		return err
	}
	logging.From(ctx).Info("answering question", "url", result.URL, "question", question, "elements", result.Table.Len())
	answer, err := a.qa.Answer(ctx, question, result.String())
	if err != nil {
		return err
	}
	printx.PrintSection(a.out, "QUESTION", question)
	printx.PrintSection(a.out, "ANSWER", answer.String())
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"natbrowser/actor/llmactor"
	"natbrowser/browser"
	"natbrowser/llm"
	"natbrowser/logging"
	"natbrowser/runner/finiterunner"
	"natbrowser/utils/printx"
)

const defaultObjective = "Find the opening hours of the nearest public library"

func runCmd(root *rootOptions) *cobra.Command {
	var (
		objective string
		url       string
		headful   bool
		auto      bool
		maxSteps  int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Work on an objective in a live browser",
		Long: `Opens a browser, shows the simplified page and the command the model
suggests, then waits for input. Press enter to run the suggestion or type a
command letter (h for help). With --auto suggestions run without prompting
until the model answers or the step limit is reached.

Examples:
  natbot run --objective "What is the weather in Lisbon?"
  natbot run --url wikipedia.org --headful
  natbot run --auto --objective "Who wrote Dune?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("headful") {
				cfg.Browser.Headful = headful
			}
			if cmd.Flags().Changed("max-steps") {
				cfg.Runner.MaxNumSteps = maxSteps
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
			runID := uuid.NewString()
			ctx = logging.WithAttrs(ctx, "run_id", runID)

			in := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			if objective == "" {
				fmt.Fprintln(out, "What is your objective? (enter for default)")
				if in.Scan() {
					objective = strings.TrimSpace(in.Text())
				}
				if objective == "" {
					objective = defaultObjective
				}
			}

			model := llm.NewOpenAIChatModel(llm.ChatModelID(cfg.Model.Name), apiKey, cfg.Model.BaseURL)
			counter, err := llm.NewTokenCounter()
			if err != nil {
				return err
			}
			act := llmactor.NewLLMActor(model, counter, cfg.ActorOptions())

			br := browser.NewBrowser(ctx, cfg.BrowserOptions())
			defer br.Close()

			logging.From(ctx).Info("starting run", "url", url, "objective", objective, "model", cfg.Model.Name)
			r, err := finiterunner.NewFiniteRunnerFromInitialPage(ctx, act, br, url, objective, cfg.RunnerOptions())
			if err != nil {
				return err
			}
			logDir := filepath.Join(cfg.Runner.LogDir, runID)
			if auto {
				return runAuto(ctx, r, out, logDir)
			}
			loop := &interactive{
				session: r,
				in:      in,
				out:     out,
				logDir:  logDir,
			}
			return loop.run(ctx)
		},
	}

	cmd.Flags().StringVarP(&objective, "objective", "o", "", "what the agent should achieve")
	cmd.Flags().StringVarP(&url, "url", "u", "", "page to start from (default from config)")
	cmd.Flags().BoolVar(&headful, "headful", false, "show the browser window")
	cmd.Flags().BoolVar(&auto, "auto", false, "run suggestions without prompting")
	cmd.Flags().IntVar(&maxSteps, "max-steps", finiterunner.DefaultMaxNumSteps, "step limit for --auto")
	return cmd
}

func runAuto(ctx context.Context, r *finiterunner.FiniteRunner, out io.Writer, logDir string) error {
	stream, err := r.RunAndStream(ctx)
	if err != nil {
		return err
	}
	var streamErr error
	for event := range stream {
		if event.Error != nil {
			streamErr = event.Error
			continue
		}
		if event.TrajectoryItem.ShouldRender() {
			fmt.Fprintln(out, event.TrajectoryItem.GetAbbreviatedText())
		}
	}
	if answer, ok := r.Answer(); ok {
		printx.PrintSection(out, "ANSWER", answer)
	}
	if err := r.Log(logDir); err != nil {
		logging.From(ctx).Warn("failed to write logs", "dir", logDir, "error", err)
	}
	return streamErr
}

var _ session = (*finiterunner.FiniteRunner)(nil)

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medic/supportbot/internal/chat"
	"github.com/medic/supportbot/internal/config"
	"github.com/medic/supportbot/internal/engine"
	"github.com/medic/supportbot/internal/faq"
	"github.com/medic/supportbot/internal/intent"
	"github.com/medic/supportbot/internal/lookup"
	"github.com/medic/supportbot/internal/profile"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "supportctl",
		Short:        "Talk to the support engine from a terminal",
		SilenceUsage: true,
	}
	root.AddCommand(newChatCmd(), newClassifyCmd(), newAnswerCmd(), newHoursCmd())
	return root
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat session backed by in-memory stores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ec, err := cfg.Engine()
			if err != nil {
				return err
			}
			level, _ := zerolog.ParseLevel(cfg.LogLevel)
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()

			var client lookup.Client = lookup.MockClient{}
			if cfg.LookupURL != "" {
				client = lookup.NewHTTPClient(cfg.LookupURL, cfg.LookupTimeout, logger)
			}
			svc := &chat.Service{
				Router:     engine.NewRouter(ec, intent.Default(), faq.Default()),
				Profiles:   profile.NewMemoryStore(),
				Transcript: chat.NewMemoryTranscript(),
				Lookup:     client,
				Logger:     logger,
			}

			session := uuid.NewString()
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(out, "> ")
			for scanner.Scan() {
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					fmt.Fprint(out, "> ")
					continue
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
				reply, err := svc.Handle(ctx, session, text)
				cancel()
				if err != nil {
					return err
				}
				for _, m := range reply.Messages {
					fmt.Fprintln(out, m)
				}
				if h, ok := reply.Action.Handoff(); ok {
					if h.Call != "" {
						fmt.Fprintln(out, "  ["+h.TelURI()+"]")
					}
					if h.WhatsApp != "" {
						fmt.Fprintln(out, "  ["+h.WhatsApp+"]")
					}
				}
				fmt.Fprint(out, "> ")
			}
			return scanner.Err()
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Print the intent and score for a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, score := intent.Default().ClassifyWithScore(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", in, score)
			return nil
		},
	}
}

func newAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <text>",
		Short: "Print the best FAQ answer for a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, score, ok := faq.Default().Match(strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("no FAQ entry above the confidence floor")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s %d]\n%s\n", e.ID, score, e.Answer)
			return nil
		},
	}
}

func newHoursCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Report whether the office is open",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			h, err := cfg.Hours()
			if err != nil {
				return err
			}
			now := time.Now()
			if at != "" {
				if now, err = time.Parse(time.RFC3339, at); err != nil {
					return fmt.Errorf("parse --at: %w", err)
				}
			}
			state := "closed"
			if h.IsOpen(now) {
				state = "open"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d:00-%d:00 %s, %s local)\n",
				state, h.StartHour, h.EndHour, h.Location, now.In(h.Location).Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "evaluate at this RFC3339 instant instead of now")
	return cmd
}

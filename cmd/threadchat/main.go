package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/awasaki/threadchat/internal/channel"
	"github.com/awasaki/threadchat/internal/chatui"
	"github.com/awasaki/threadchat/internal/topics"
)

var rootCmd = &cobra.Command{
	Use:   "threadchat",
	Short: "Terminal client for the local thread chat server",
	RunE:  runChat,
}

var (
	flagServer    string
	flagTopicsAPI string
	flagUsername  string
	flagLogFile   string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagServer, "server", envOr("CHAT_SERVER", "ws://localhost:8080"), "chat server WebSocket URL (from env CHAT_SERVER if set)")
	flags.StringVar(&flagTopicsAPI, "topics-api", envOr("TOPICS_API", "http://localhost:8000"), "thread directory base URL (from env TOPICS_API if set)")
	flags.StringVar(&flagUsername, "username", "anonymous", "name recorded when starting a thread")
	flags.StringVar(&flagLogFile, "log-file", "", "optional file for diagnostics; the TUI owns the terminal, so logs are discarded without it")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("execute chat command")
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zerolog.Nop()
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = zerolog.New(f).With().Timestamp().Logger()
	}

	// The channel is built here and handed to the view; its lifetime is the
	// program's, closed on the way out.
	ch := channel.New(flagServer, logger)
	if err := ch.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer ch.Close()

	directory := topics.NewClient(flagTopicsAPI)
	app := chatui.New(ch, directory, flagUsername)

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := ch.Subscribe(func(payload string) {
		program.Send(chatui.IncomingMsg{Payload: payload})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}

	logger.Info().Msg("shutting down")
	return nil
}

// Command newsbrief is a terminal client for topic news digests, with a
// companion serve mode that generates the digests themselves.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/takumin/newsbrief/internal/application/settings"
	"github.com/takumin/newsbrief/internal/application/usecase"
	"github.com/takumin/newsbrief/internal/infrastructure/ai"
	"github.com/takumin/newsbrief/internal/infrastructure/ai/anthropic"
	"github.com/takumin/newsbrief/internal/infrastructure/ai/openai"
	"github.com/takumin/newsbrief/internal/infrastructure/api"
	"github.com/takumin/newsbrief/internal/infrastructure/config"
	"github.com/takumin/newsbrief/internal/infrastructure/export"
	"github.com/takumin/newsbrief/internal/infrastructure/history"
	"github.com/takumin/newsbrief/internal/infrastructure/news"
	"github.com/takumin/newsbrief/internal/infrastructure/scrape"
	"github.com/takumin/newsbrief/internal/presentation/tui"
	"github.com/takumin/newsbrief/internal/server"
)

type cli struct {
	Config string `help:"Path to config file." type:"path"`

	Tui     tuiCmd     `cmd:"" default:"1" help:"Interactive digest client."`
	Serve   serveCmd   `cmd:"" help:"Run the digest API server."`
	History historyCmd `cmd:"" help:"Show recent submissions."`
}

type tuiCmd struct{}

type serveCmd struct{}

type historyCmd struct {
	Limit int `help:"Number of submissions to show." default:"20"`
}

func main() {
	var args cli
	ctx := kong.Parse(&args,
		kong.Name("newsbrief"),
		kong.Description("AI news digests for any topic, in your terminal."),
		kong.UsageOnError(),
	)

	store, err := config.Load(args.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx.Command(), args, store.Settings); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(command string, args cli, cfg settings.Settings) error {
	switch command {
	case "serve":
		return runServe(cfg)
	case "history":
		return runHistory(cfg, args.History.Limit)
	default:
		return runTUI(cfg)
	}
}

func runTUI(cfg settings.Settings) error {
	client := api.NewClient(cfg.Client.BaseURL)
	orchestrator := usecase.NewOrchestrator(client).
		WithProtocol(cfg.Client.Deadline(), cfg.Client.Attempts, cfg.Client.Backoff())

	recorder := history.NewManager(cfg.HistoryFile)
	defer func() { _ = recorder.Close() }()

	digests := usecase.NewDigestService(orchestrator, recorder)
	exporter := export.Exporter{Dir: cfg.ExportDir}

	model := tui.NewModel(cfg, digests, exporter.Export)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runServe(cfg settings.Settings) error {
	generator, err := newGenerator(cfg.AI)
	if err != nil {
		return err
	}
	if generator == nil {
		log.Printf("no AI provider configured, serving mock digests")
	}

	svc := &usecase.GenerateService{
		Searcher:     news.Searcher{},
		Fetcher:      scrape.Fetcher{Client: &http.Client{Timeout: 30 * time.Second}},
		Generator:    generator,
		MaxArticles:  cfg.Server.MaxArticles,
		FetchContent: cfg.Server.FetchContent,
	}

	srv, err := server.New(svc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("serving digest API on %s", cfg.Server.Addr)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func newGenerator(cfg settings.AIConfig) (ai.Client, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider needs ai.api_key")
		}
		return anthropic.NewClient(cfg.APIKey, cfg.Model, cfg.MaxTokens), nil
	case "openai":
		return openai.NewClient(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func runHistory(cfg settings.Settings, limit int) error {
	manager := history.NewManager(cfg.HistoryFile)
	defer func() { _ = manager.Close() }()

	entries, err := manager.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No submissions yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-11s %3d articles  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Outcome, e.ArticleCount, e.Topic)
	}
	return nil
}

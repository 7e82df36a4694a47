// Package main provides the mnemo chat application: an assistant with a
// persistent, teachable memory. It runs as a plain terminal REPL by
// default, as a full-screen TUI with -tui, or as an HTTP server with
// -serve.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/entrhq/mnemo/pkg/agent"
	"github.com/entrhq/mnemo/pkg/llm/openai"
	"github.com/entrhq/mnemo/pkg/llm/tokenizer"
	"github.com/entrhq/mnemo/pkg/memory"
	"github.com/entrhq/mnemo/pkg/tui"
	"github.com/entrhq/mnemo/pkg/web"
)

const version = "0.1.0"

// Config holds the application configuration.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	MemoryDir    string
	CommandsFile string
	ServeAddr    string
	TokenBudget  int
	TUI          bool
	ShowVersion  bool
}

func main() {
	// .env is optional; flags and real environment variables win.
	_ = godotenv.Load()

	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("mnemo v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	if err := run(ctx, config); err != nil {
		cancel()
		log.Fatalf("Application error: %v", err)
	}
}

func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.APIKey, "api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key (or set OPENAI_API_KEY)")
	flag.StringVar(&config.BaseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI-compatible API base URL (or set OPENAI_BASE_URL)")
	flag.StringVar(&config.Model, "model", openai.DefaultModel, "LLM model to use")
	flag.StringVar(&config.MemoryDir, "memory", "./json_memory", "Memory storage directory")
	flag.StringVar(&config.CommandsFile, "commands", "", "Optional YAML file overriding teach trigger phrases")
	flag.StringVar(&config.ServeAddr, "serve", "", "Serve the web front-end on this address (e.g. :8080) instead of the terminal")
	flag.IntVar(&config.TokenBudget, "context-budget", 0, "Maximum context tokens per turn (0 = unlimited)")
	flag.BoolVar(&config.TUI, "tui", false, "Run the full-screen terminal UI")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")
	flag.Parse()

	return config
}

func run(ctx context.Context, config *Config) error {
	provider, err := openai.NewProvider(config.APIKey,
		openai.WithModel(config.Model),
		openai.WithBaseURL(config.BaseURL),
	)
	if err != nil {
		return err
	}

	var storeOpts []memory.Option
	if config.TokenBudget > 0 {
		counter, err := tokenizer.New()
		if err != nil {
			return fmt.Errorf("failed to initialize tokenizer: %w", err)
		}
		storeOpts = append(storeOpts, memory.WithTokenBudget(counter, config.TokenBudget))
	}

	store, err := memory.Open(config.MemoryDir, storeOpts...)
	if err != nil {
		return err
	}

	var agentOpts []agent.Option
	if config.CommandsFile != "" {
		commands, err := agent.LoadCommands(config.CommandsFile)
		if err != nil {
			return err
		}
		agentOpts = append(agentOpts, agent.WithCommands(commands))
	}

	a, err := agent.New(provider, store, agentOpts...)
	if err != nil {
		return err
	}

	switch {
	case config.ServeAddr != "":
		return serve(ctx, config.ServeAddr, a, store)
	case config.TUI:
		return tui.Run(a)
	default:
		return repl(ctx, a)
	}
}

// serve runs the HTTP front-end until the context is cancelled.
func serve(ctx context.Context, addr string, a *agent.Agent, store *memory.Store) error {
	server := &http.Server{
		Addr:    addr,
		Handler: web.NewServer(a, store).Routes(),
	}

	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("mnemo listening on %s\n", addr)
		errChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errChan:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// repl runs the plain line-based chat loop.
func repl(ctx context.Context, a *agent.Agent) error {
	fmt.Println("mnemo - chat with an assistant that remembers everything")
	fmt.Println("Type 'exit' to quit. Use '/note [importance] text' for short-term notes.")
	fmt.Println("---")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you: ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" || input == "bye" {
			fmt.Println("Goodbye! The agent will remember everything you taught it.")
			return nil
		}
		if rest, ok := strings.CutPrefix(input, "/note "); ok {
			content, importance := parseNote(rest)
			a.Note(content, importance)
			fmt.Println("(noted)")
			continue
		}

		reply, err := a.ProcessMessage(ctx, input)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("assistant: %s\n", reply)
	}
	return scanner.Err()
}

// parseNote splits an optional leading importance score off a /note
// payload.
func parseNote(payload string) (string, float64) {
	payload = strings.TrimSpace(payload)
	first, rest, found := strings.Cut(payload, " ")
	if found {
		var importance float64
		if _, err := fmt.Sscanf(first, "%g", &importance); err == nil {
			return strings.TrimSpace(rest), importance
		}
	}
	return payload, 0
}

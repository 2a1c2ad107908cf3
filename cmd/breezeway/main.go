// Command breezeway bridges the command line to the external breeze
// executable. The first token selects a subcommand; anything unrecognized
// is treated as the start of a literal prompt.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yossideutsch/breezeway"
	"github.com/yossideutsch/breezeway/internal/config"
	brzmcp "github.com/yossideutsch/breezeway/internal/mcp"
	"github.com/yossideutsch/breezeway/internal/transcript"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("breezeway: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(os.Args) < 2 {
		usage()
		return
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "chat":
		err = chatMain(ctx, args)
	case "code":
		err = codeMain(ctx, args)
	case "clear":
		err = clearMain(ctx)
	case "mcp":
		err = mcpMain(ctx, args)
	case "setup":
		err = setupMain(ctx, args)
	case "history":
		err = historyMain(args)
	case "show":
		err = showMain(args)
	case "version", "--version":
		fmt.Printf("breezeway %s\n", breezeway.Version)
	case "help", "-h", "--help":
		usage()
	default:
		// Not a subcommand: the whole argument list is the prompt.
		err = queryMain(ctx, os.Args[1:])
	}

	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\ninterrupted")
			os.Exit(130)
		}
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: breezeway <prompt> | <command> [args]

Talks to the local breeze executable, which runs prompts against a local
LLM. Any unrecognized first token starts a literal prompt.

Commands:
  chat <prompt>    Conversational turn (breeze keeps the history)
  code <prompt>    Code-generation turn
  clear            Discard the conversation history
  history          List recent invocation transcripts
  show <run-id>    Print one transcript in full
  setup            Build the breeze binary from an adjacent checkout
  mcp              Start the MCP server
  version          Print the version
  help             Show this help`)
}

// newClient builds the config-aware client with transcript recording.
func newClient() *breezeway.Client {
	c := breezeway.NewClient()
	size := config.DefaultTranscripts
	wd, err := os.Getwd()
	if err == nil {
		if loaded, err := config.Load(wd); err == nil {
			size = loaded.Config.TranscriptCacheSize()
		}
	}
	c.Invoker.Store = transcript.NewLRUStore(size, transcript.NewDiskStore(""))
	return c
}

func queryMain(ctx context.Context, tokens []string) error {
	out, err := newClient().AI(ctx, strings.Join(tokens, " "))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func chatMain(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("chat requires a prompt")
	}
	out, err := newClient().Chat(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func codeMain(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("code requires a prompt")
	}
	out, err := newClient().Code(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func clearMain(ctx context.Context) error {
	if err := newClient().Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Conversation cleared.")
	return nil
}

// --- mcp ---

func mcpMain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(brzmcp.Instructions)
		return nil
	}

	client := newClient()
	server := brzmcp.NewServer(client, client.Invoker.Store)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- setup ---

// setupMain builds the breeze binary from an adjacent source checkout.
// A build failure is a warning, not an error: the wrapper stays installable
// without a working Go toolchain.
func setupMain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	srcFlag := fs.String("source", "", "breeze source checkout (overrides config)")
	_ = fs.Parse(args)

	src := *srcFlag
	if src == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		loaded, err := config.Load(wd)
		if err != nil {
			return err
		}
		src = loaded.Config.Source
	}
	if src == "" {
		src = "."
	}

	goBin, err := exec.LookPath("go")
	if err != nil {
		log.Print("warning: Go compiler not found; install Go from https://go.dev and run: go build ./cmd/breeze")
		return nil
	}

	log.Print("building breeze...")
	cmd := exec.CommandContext(ctx, goBin, "build", "./cmd/breeze")
	cmd.Dir = src
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Printf("warning: building breeze failed: %v\n%s", err, out)
		log.Print("run 'go build ./cmd/breeze' manually in the breeze checkout")
		return nil
	}
	log.Print("breeze built successfully")
	return nil
}

// --- history ---

func historyMain(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	n := fs.Int("n", 10, "number of transcripts to show")
	_ = fs.Parse(args)

	recs, err := transcript.NewDiskStore("").List()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no transcripts")
		return nil
	}
	if len(recs) > *n {
		recs = recs[:*n]
	}
	for _, r := range recs {
		fmt.Printf("%s  %s  exit=%d  %s\n",
			r.Started.Format(time.RFC3339), r.ID, r.ExitCode, truncate(strings.Join(r.Args, " "), 60))
	}
	return nil
}

func showMain(args []string) error {
	if len(args) != 1 {
		return errors.New("show requires a run ID (see: breezeway history)")
	}

	r, err := transcript.NewDiskStore("").Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run:      %s\n", r.ID)
	fmt.Printf("Started:  %s\n", r.Started.Format(time.RFC3339))
	fmt.Printf("Duration: %s\n", r.Duration)
	fmt.Printf("Args:     %s\n", strings.Join(r.Args, " "))
	fmt.Printf("Exit:     %d\n", r.ExitCode)
	if r.Stdout != "" {
		fmt.Printf("\nStdout:\n%s\n", r.Stdout)
	}
	if r.Stderr != "" {
		fmt.Printf("\nStderr:\n%s\n", r.Stderr)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

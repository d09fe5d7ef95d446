package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	punchchat "github.com/dsluijk/PunchChat"
)

// CLI configuration
type CLIConfig struct {
	config punchchat.Config
	help   bool
}

// parseCLIFlags parses command-line flags on top of the environment
// defaults and returns the configuration.
func parseCLIFlags(fs *flag.FlagSet, args []string, defaults punchchat.Config) (*CLIConfig, error) {
	cli := &CLIConfig{config: defaults}
	cfg := &cli.config

	// Network configuration
	fs.UintVar(&cfg.Port, "port", defaults.Port, "Local UDP port to bind (0 picks a random port)")
	fs.UintVar(&cfg.Port, "p", defaults.Port, "Shorthand for -port")
	fs.DurationVar(&cfg.PollInterval, "poll", defaults.PollInterval,
		fmt.Sprintf("Poll at a fixed interval instead of waiting for events (e.g. %v)", punchchat.DefaultPollInterval))
	fs.StringVar(&cfg.Announce, "announce", defaults.Announce, "Message sent to the peer on startup (empty disables)")

	// Output configuration
	fs.BoolVar(&cfg.Color, "color", defaults.Color, "Colour the message prefixes")
	fs.StringVar(&cfg.LogLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", defaults.LogFile, "Log file path (default: stderr)")

	// Help
	fs.BoolVar(&cli.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Remote = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected one remote address, got %d arguments", fs.NArg())
	}
	return cli, nil
}

// printUsage prints the usage information.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "PunchChat")
	fmt.Fprintln(w, "=========")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chat with another client directly over UDP. Both sides must be")
	fmt.Fprintln(w, "able to reach each other's address; no relay server is used.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s [options] <remote host:port>\n", fs.Name())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Every option can also be set with a %s_* environment variable,\n", punchchat.EnvPrefix)
	fmt.Fprintln(w, "e.g. PUNCHCHAT_PORT=5000 or PUNCHCHAT_LOG_LEVEL=debug.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s -port 5000 192.0.2.10:5001\n", fs.Name())
	fmt.Fprintf(w, "  %s -p 5001 -color 192.0.2.20:5000\n", fs.Name())
}

// setupSignalHandling cancels the session on interrupt.
func setupSignalHandling(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		<-sigChan
		cancel()
	}()
}

// run executes the command and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	defaults, err := punchchat.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "!! Configuration error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("punchchat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cli, err := parseCLIFlags(fs, args, defaults)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, fs)
			return 0
		}
		fmt.Fprintf(stderr, "!! %v\n", err)
		fmt.Fprintln(stderr, "Use -help for usage information.")
		return 1
	}
	if cli.help {
		printUsage(stdout, fs)
		return 0
	}

	if err := cli.config.Validate(); err != nil {
		fmt.Fprintf(stderr, "!! Configuration error: %v\n", err)
		fmt.Fprintln(stderr, "Use -help for usage information.")
		return 1
	}

	logger, closer, err := punchchat.NewLogger(cli.config)
	if err != nil {
		fmt.Fprintf(stderr, "!! %v\n", err)
		return 1
	}
	defer closer.Close()

	session, err := punchchat.New(cli.config, stdin, stdout, logger)
	if err != nil {
		fmt.Fprintf(stderr, "!! Unable to start: %v\n", err)
		return 1
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	err = session.Run(ctx)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return 0
	case err != nil:
		fmt.Fprintf(stderr, "!! %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"paintpick/internal/api"
	"paintpick/internal/config"
	"paintpick/internal/eventbus"
	"paintpick/internal/opener"
	"paintpick/internal/ui"
	"paintpick/internal/widget"
)

const msgTriggerMissingInputs = "Por favor, ingrese la marca y el código de color antes de buscar la imagen."

var errTriggerMissingInputs = errors.New(msgTriggerMissingInputs)

var (
	errorStyle = color.New(color.FgRed)
	boldStyle  = color.New(color.Bold)
)

type options struct {
	configPath  string
	brand       string
	code        string
	host        bool
	openerURL   string
	stdout      bool
	writeConfig bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("paintpick", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.configPath, "config", "", "Path to the config file")
	fs.StringVar(&opts.brand, "brand", "", "Paint brand to search for")
	fs.StringVar(&opts.code, "code", "", "Color code to search for")
	fs.BoolVar(&opts.host, "host", false, "Launched from the host form: brand and code are required")
	fs.StringVar(&opts.openerURL, "opener-url", "", "URL that receives the applied color")
	fs.BoolVar(&opts.stdout, "stdout", false, "Print the applied color as JSON on exit")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "Write the effective config file and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// validateTrigger enforces that the host form supplied both values
func validateTrigger(opts options) error {
	if !opts.host {
		return nil
	}
	if strings.TrimSpace(opts.brand) == "" || strings.TrimSpace(opts.code) == "" {
		return errTriggerMissingInputs
	}
	return nil
}

// selectOpener picks where applied colors go. The returned buffer is non-nil when
// messages are held back until the program exits.
func selectOpener(opts options, cfg *config.Config) (opener.Opener, *bytes.Buffer) {
	if opts.stdout {
		buf := &bytes.Buffer{}
		return opener.NewWriterOpener(buf), buf
	}

	url := opts.openerURL
	if url == "" {
		url = cfg.Opener.URL
	}
	if url == "" {
		return opener.None(), nil
	}
	return opener.NewHTTPOpener(url, cfg.Opener.Origin, cfg.API.Timeout.Std()), nil
}

// logEvents mirrors widget events into the log file
func logEvents(bus eventbus.EventBus) {
	for _, t := range []eventbus.EventType{
		eventbus.EventWidgetOpened,
		eventbus.EventSearchStarted,
		eventbus.EventSearchCompleted,
		eventbus.EventImageSelected,
		eventbus.EventColorExtracted,
		eventbus.EventColorApplied,
		eventbus.EventError,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			log.Printf("event %s: %+v", e.Type(), e)
		})
	}
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := validateTrigger(opts); err != nil {
		errorStyle.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := os.OpenFile("paintpick.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()
	logEvents(bus)

	configSvc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	if opts.writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			errorStyle.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", boldStyle.Sprint(configSvc.Path()))
		return
	}

	op, held := selectOpener(opts, cfg)

	client := api.NewHTTPClient(cfg.SearchEndpoint(), cfg.ExtractEndpoint(), cfg.API.Timeout.Std())
	w := widget.New(ctx, widget.Options{
		Client:          client,
		Opener:          op,
		Bus:             bus,
		AutoSearchDelay: cfg.UI.AutoSearchDelay.Std(),
		CloseDelay:      cfg.UI.CloseDelay.Std(),
	})

	model := ui.NewModel(w, opts.brand, opts.code)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		errorStyle.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	if held != nil {
		if wo, ok := op.(*opener.WriterOpener); ok {
			wo.Close()
		}
		_, _ = os.Stdout.Write(held.Bytes())
	}
}

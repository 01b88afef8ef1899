// Package main provides wavetest - operator CLI for the AIrWAVE browser
// test harness: browser install, target preflight checks, fixture asset
// generation, the demo application server and run-report rendering.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"

	"github.com/airwave-qa/wavetest/pkg/config"
	"github.com/airwave-qa/wavetest/pkg/files"
	"github.com/airwave-qa/wavetest/pkg/harness"
	"github.com/airwave-qa/wavetest/pkg/notify"
	"github.com/airwave-qa/wavetest/pkg/progress"
	"github.com/airwave-qa/wavetest/pkg/render"
	"github.com/airwave-qa/wavetest/pkg/testapp"
)

// opts holds all command-line options.
type opts struct {
	Install   bool   `short:"i" long:"install" description:"install browsers and the global config file"`
	Check     bool   `short:"c" long:"check" description:"run preflight checks against the configured target"`
	Assets    string `short:"a" long:"assets" description:"generate fixture assets into the given directory"`
	ServeDemo bool   `short:"s" long:"serve-demo" description:"start the demo application server"`
	Port      int    `short:"p" long:"port" default:"3000" description:"demo application port"`
	Demo      bool   `long:"demo" description:"run the demo application in demo mode (any credentials accepted)"`
	Report    string `short:"r" long:"report" description:"render a markdown run report to the terminal"`
	Config    string `long:"config" description:"path to local config file"`
	NoColor   bool   `long:"no-color" description:"disable color output"`
	Version   bool   `short:"v" long:"version" description:"print version and exit"`
}

var revision = "unknown"

func main() {
	fmt.Printf("wavetest %s\n", revision)

	var o opts
	parser := flags.NewParser(&o, flags.Default)
	parser.Usage = "[OPTIONS]"

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if o.Version {
		os.Exit(0)
	}

	// setup context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	switch {
	case o.Install:
		return runInstall()
	case o.Report != "":
		return runReport(o)
	case o.Assets != "":
		return runAssets(o)
	case o.ServeDemo:
		return runServeDemo(ctx, o)
	case o.Check:
		return runCheck(ctx, o)
	default:
		return errors.New("nothing to do, see --help")
	}
}

// runInstall downloads the browser and writes the global config template.
func runInstall() error {
	path, err := config.InstallGlobal()
	if err != nil {
		return fmt.Errorf("install config: %w", err)
	}
	fmt.Printf("config: %s\n", path)

	if err := harness.Install(); err != nil {
		return err
	}
	fmt.Println("browsers installed")
	return nil
}

// runReport renders a markdown report file to the terminal.
func runReport(o opts) error {
	data, err := os.ReadFile(o.Report) //nolint:gosec // report path comes from the operator
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	out, err := render.Markdown(string(data), o.NoColor)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	fmt.Print(out)
	return nil
}

// runAssets generates the fixture asset set.
func runAssets(o opts) error {
	assets, err := files.CreateTestAssets(o.Assets)
	if err != nil {
		return err
	}
	for _, a := range assets {
		fmt.Printf("%s (%s)\n", a.Path, a.MIME)
	}
	return nil
}

// runServeDemo starts the stand-in application and blocks until the
// context is canceled.
func runServeDemo(ctx context.Context, o opts) error {
	app, err := testapp.NewServer(testapp.Config{Port: o.Port, DemoMode: o.Demo})
	if err != nil {
		return fmt.Errorf("create demo app: %w", err)
	}

	fmt.Printf("demo application: http://localhost:%d\n", o.Port)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("demo app: %w", err)
	}
	return nil
}

// runCheck runs preflight checks against the configured target and prints
// a rendered report, optionally notifying configured channels.
func runCheck(ctx context.Context, o opts) error {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runID := uuid.NewString()[:8]
	log, err := progress.NewLogger(progress.Config{
		ArtifactsDir: cfg.ArtifactsDir,
		RunID:        runID,
		Target:       cfg.BaseURL,
		NoColor:      o.NoColor,
	})
	if err != nil {
		return fmt.Errorf("create run logger: %w", err)
	}
	defer log.Close()

	svc, err := notify.New(notifyParams(cfg), log)
	if err != nil {
		return fmt.Errorf("create notifier: %w", err)
	}

	log.Print("preflight checks against %s", cfg.BaseURL)
	results := runPreflight(ctx, cfg, log)

	passed, failed := 0, 0
	for _, r := range results {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}

	summary := render.RunSummary(cfg.BaseURL, log.Elapsed(), results)
	out, err := render.Markdown(summary, o.NoColor)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	log.SetPhase(progress.PhaseCleanup)
	log.PrintAligned(out)

	status := "success"
	var errMsg string
	if failed > 0 {
		status = "failure"
		errMsg = fmt.Sprintf("%d preflight checks failed", failed)
	}
	svc.Send(ctx, notify.Result{
		Status:   status,
		RunID:    runID,
		Target:   cfg.BaseURL,
		Duration: log.Elapsed(),
		Passed:   passed,
		Failed:   failed,
		Error:    errMsg,
	})

	if failed > 0 {
		return fmt.Errorf("%d preflight checks failed", failed)
	}
	return nil
}

// runPreflight probes the target's health endpoint, login page and render
// event feed.
func runPreflight(ctx context.Context, cfg *config.Config, log *progress.Logger) []render.CheckResult {
	client := &http.Client{Timeout: 5 * time.Second}

	checks := []struct {
		name   string
		verify func() (string, error)
	}{
		{"health endpoint", func() (string, error) {
			return expectStatus(ctx, client, cfg.BaseURL+"/api/health", http.StatusOK)
		}},
		{"login page served", func() (string, error) {
			return expectStatus(ctx, client, cfg.BaseURL+cfg.LoginPath, http.StatusOK)
		}},
		{"render event feed", func() (string, error) {
			return expectEventStream(ctx, cfg.BaseURL+"/events/render")
		}},
	}

	var results []render.CheckResult
	for _, c := range checks {
		details, err := c.verify()
		if err != nil {
			log.Error("%s: %v", c.name, err)
			results = append(results, render.CheckResult{Name: c.name, Details: err.Error()})
			continue
		}
		log.Print("%s: ok", c.name)
		results = append(results, render.CheckResult{Name: c.name, Passed: true, Details: details})
	}
	return results
}

// expectStatus fetches the url and checks the response status.
func expectStatus(ctx context.Context, client *http.Client, url string, want int) (string, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return "", fmt.Errorf("got status %d, want %d", resp.StatusCode, want)
	}
	return fmt.Sprintf("%d in %s", resp.StatusCode, time.Since(start).Round(time.Millisecond)), nil
}

// expectEventStream verifies the url answers with an SSE content type.
// only headers are read, the stream itself is not consumed.
func expectEventStream(ctx context.Context, url string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	if ct != "text/event-stream" {
		return "", fmt.Errorf("got content type %q, want text/event-stream", ct)
	}
	return "event stream reachable", nil
}

// notifyParams maps configuration to notification service parameters.
func notifyParams(cfg *config.Config) notify.Params {
	return notify.Params{
		Channels:      cfg.NotifyChannels,
		OnError:       cfg.NotifyOnError,
		OnComplete:    cfg.NotifyOnComplete,
		TimeoutMs:     cfg.NotifyTimeoutMs,
		TelegramToken: cfg.NotifyTelegramToken,
		TelegramChat:  cfg.NotifyTelegramChat,
		SlackToken:    cfg.NotifySlackToken,
		SlackChannel:  cfg.NotifySlackChannel,
		SMTPHost:      cfg.NotifySMTPHost,
		SMTPPort:      cfg.NotifySMTPPort,
		SMTPUsername:  cfg.NotifySMTPUsername,
		SMTPPassword:  cfg.NotifySMTPPassword,
		SMTPStartTLS:  cfg.NotifySMTPStartTLS,
		EmailFrom:     cfg.NotifyEmailFrom,
		EmailTo:       cfg.NotifyEmailTo,
		WebhookURLs:   cfg.NotifyWebhookURLs,
		CustomScript:  cfg.NotifyCustomScript,
	}
}

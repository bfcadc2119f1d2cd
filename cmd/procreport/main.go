// Command procreport generates and delivers the daily client process report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/perceptionlabs/procreport/config"
	"github.com/perceptionlabs/procreport/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.Error("command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"run": {
			name:        "run",
			description: "Generate the daily report and deliver it by email",
			run:         runReport,
		},
		"preview": {
			name:        "preview",
			description: "Generate the report and write the bodies to files without sending",
			run:         runPreview,
		},
		"check": {
			name:        "check",
			description: "Verify configuration and collaborator connectivity",
			run:         runCheck,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: procreport <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-10s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func runReport(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	recipient := fs.String("recipient", "", "override the configured notification recipient")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *recipient != "" {
		ctx.Config.Report.Recipient = *recipient
	}

	db, err := bootstrap.ConnectDB(ctx.Config.Postgres, ctx.Logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close() //nolint:errcheck // process exits after Run

	collab, err := bootstrap.BuildCollaborators(ctx.Ctx, ctx.Config, db, ctx.Logger, true)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := collab.Close(); closeErr != nil {
			ctx.Logger.Warn("close collaborators", "error", closeErr)
		}
	}()

	svc, err := bootstrap.NewReportService(ctx.Config, collab, ctx.Logger)
	if err != nil {
		return err
	}
	if runErr := svc.Run(ctx.Ctx); runErr != nil {
		return runErr
	}

	ctx.Logger.Info("daily report generation complete")
	return nil
}

func runPreview(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	outDir := fs.String("out", "", "directory for the rendered bodies (defaults to the report output dir)")
	withGraph := fs.Bool("with-graph", false, "resolve video links via Graph during preview")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outDir == "" {
		*outDir = ctx.Config.Report.OutputDir
	}

	db, err := bootstrap.ConnectDB(ctx.Config.Postgres, ctx.Logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close() //nolint:errcheck // process exits after preview

	collab, err := bootstrap.BuildCollaborators(ctx.Ctx, ctx.Config, db, ctx.Logger, *withGraph)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := collab.Close(); closeErr != nil {
			ctx.Logger.Warn("close collaborators", "error", closeErr)
		}
	}()

	svc, err := bootstrap.NewReportService(ctx.Config, collab, ctx.Logger)
	if err != nil {
		return err
	}
	report, err := svc.Generate(ctx.Ctx)
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(*outDir, 0o755); mkErr != nil {
		return fmt.Errorf("create preview dir: %w", mkErr)
	}
	htmlPath := *outDir + "/report.html"
	textPath := *outDir + "/report.txt"
	if writeErr := os.WriteFile(htmlPath, []byte(report.HTMLBody), 0o644); writeErr != nil {
		return fmt.Errorf("write html preview: %w", writeErr)
	}
	if writeErr := os.WriteFile(textPath, []byte(report.TextBody), 0o644); writeErr != nil {
		return fmt.Errorf("write text preview: %w", writeErr)
	}

	ctx.Logger.Info("preview written",
		"subject", report.Subject,
		"html", htmlPath,
		"text", textPath,
	)
	return nil
}

func runCheck(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	withGraph := fs.Bool("with-graph", false, "also authenticate against Graph and resolve the sender identity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := bootstrap.ConnectDB(ctx.Config.Postgres, ctx.Logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close() //nolint:errcheck // process exits after check

	collab, err := bootstrap.BuildCollaborators(ctx.Ctx, ctx.Config, db, ctx.Logger, *withGraph)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := collab.Close(); closeErr != nil {
			ctx.Logger.Warn("close collaborators", "error", closeErr)
		}
	}()

	names, err := collab.Repo.ClientNamesByAPIKey(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("client mapping query: %w", err)
	}
	ctx.Logger.Info("database check passed", "client_accounts", len(names))

	if *withGraph {
		email, emailErr := collab.Session.UserEmail(ctx.Ctx)
		if emailErr != nil {
			return fmt.Errorf("graph identity check: %w", emailErr)
		}
		ctx.Logger.Info("graph check passed", "sender", email)
	}

	ctx.Logger.Info("configuration check complete",
		"logs_configured", collab.Logs != nil,
		"skip_entries", len(collab.Skip),
	)
	return nil
}

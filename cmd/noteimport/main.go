package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	noteimport "github.com/goliatone/go-noteimport"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "noteimport",
		Usage: "Stage interlinked markdown notes in an import session and publish them as permanent posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "workspace",
				Usage:   "Directory holding per-session working files",
				Value:   "workspace",
				Sources: cli.EnvVars("NOTEIMPORT_WORKSPACE"),
			},
			&cli.StringFlag{
				Name:    "published",
				Usage:   "Directory holding published posts",
				Value:   "published",
				Sources: cli.EnvVars("NOTEIMPORT_PUBLISHED"),
			},
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "SQLite DSN for session records",
				Value:   "file:noteimport.db?cache=shared&_fk=1",
				Sources: cli.EnvVars("NOTEIMPORT_DSN"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("NOTEIMPORT_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Create a session from a directory of markdown notes",
				ArgsUsage: "<dir>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "main",
						Usage: "Filename of the main document (defaults to the first note)",
					},
					&cli.BoolFlag{
						Name:  "commit",
						Usage: "Commit the session when it is ready",
					},
				},
				Action: runImport,
			},
			{
				Name:      "status",
				Usage:     "Report the status of an existing session",
				ArgsUsage: "<session-id>",
				Action:    runStatus,
			},
			{
				Name:      "commit",
				Usage:     "Publish a ready session to the permanent store",
				ArgsUsage: "<session-id>",
				Action:    runCommit,
			},
			{
				Name:      "abandon",
				Usage:     "Discard a session and its working files",
				ArgsUsage: "<session-id>",
				Action:    runAbandon,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "noteimport: %v\n", err)
		os.Exit(1)
	}
}

func openModule(ctx context.Context, cmd *cli.Command) (*noteimport.Module, error) {
	cfg := noteimport.DefaultConfig()
	cfg.Workspace.Dir = cmd.String("workspace")
	cfg.Published.Dir = cmd.String("published")
	cfg.Storage.DSN = cmd.String("dsn")
	cfg.Logging.Level = cmd.String("log-level")
	return noteimport.New(ctx, cfg)
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		return fmt.Errorf("import requires a directory argument")
	}

	files, err := listNotes(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown notes found in %s", dir)
	}

	mod, err := openModule(ctx, cmd)
	if err != nil {
		return err
	}
	defer mod.Close()
	svc := mod.Sessions()

	id, err := svc.CreateSession(ctx)
	if err != nil {
		return err
	}

	mainFile := cmd.String("main")
	if mainFile == "" {
		mainFile = filepath.Base(files[0])
	}

	var summary *noteimport.SessionSummary
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		summary, err = svc.AddNote(ctx, noteimport.AddNoteRequest{
			SessionID: id,
			Filename:  filepath.Base(path),
			Content:   string(content),
			IsMain:    filepath.Base(path) == mainFile,
		})
		if err != nil {
			return fmt.Errorf("add %s: %w", path, err)
		}
	}

	if cmd.Bool("commit") && summary.Ready {
		result, err := svc.Commit(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(result)
	}
	return printJSON(summary)
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("status requires a session id")
	}
	mod, err := openModule(ctx, cmd)
	if err != nil {
		return err
	}
	defer mod.Close()

	summary, err := mod.Sessions().GetSession(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(summary)
}

func runCommit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("commit requires a session id")
	}
	mod, err := openModule(ctx, cmd)
	if err != nil {
		return err
	}
	defer mod.Close()

	result, err := mod.Sessions().Commit(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runAbandon(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("abandon requires a session id")
	}
	mod, err := openModule(ctx, cmd)
	if err != nil {
		return err
	}
	defer mod.Close()

	return mod.Sessions().Abandon(ctx, id)
}

func listNotes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

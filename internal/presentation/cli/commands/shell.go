package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// NewShellCmd creates the shell command.
func NewShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive pricing shell",
		Long: `Start an interactive shell for repeated pricing lookups.

The catalog is fetched once and kept in memory, so lookups are instant.
Edits to config.yaml are picked up live.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context())
		},
	}
}

func runShell(ctx context.Context) error {
	formatter := GetFormatter()
	container := GetContainer()
	appContext := GetAppContext()
	if container == nil || appContext == nil {
		return fmt.Errorf("application not initialized")
	}

	// Pick up config.yaml edits while the shell runs
	if err := container.StartConfigWatching(appContext.Ctx, globalFlags.ConfigFile); err != nil {
		if globalFlags.Verbose {
			formatter.Warning("Could not watch config: %v", err)
		}
	}

	if err := ensureCatalog(ctx, container, formatter); err != nil {
		return err
	}

	svc := container.PricingService()

	formatter.Header("Modelworth Shell")
	formatter.Item("Source", string(svc.Source()))
	formatter.Item("Entries", fmt.Sprintf("%d", svc.CatalogSize()))
	formatter.Println("")
	formatter.Info("Type a model name to resolve it. Type /help for commands.")
	formatter.Println("")

	rl, err := readline.New("mw> ")
	if err != nil {
		return fmt.Errorf("could not create readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			shouldExit, err := handleShellCommand(ctx, line)
			if err != nil {
				formatter.Error("%s", err.Error())
				continue
			}
			if shouldExit {
				break
			}
			continue
		}

		// Bare input resolves as a model name
		if err := runResolve(ctx, line); err != nil {
			formatter.Error("%s", err.Error())
		}
		formatter.Println("")
	}

	formatter.Info("Goodbye!")
	return nil
}

// handleShellCommand handles slash commands in the shell.
// Returns (shouldExit, error).
func handleShellCommand(ctx context.Context, line string) (bool, error) {
	formatter := GetFormatter()

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}

	switch strings.ToLower(parts[0]) {
	case "/exit", "/quit":
		return true, nil

	case "/help":
		formatter.Header("Shell Commands")
		formatter.Item("<model name>", "Resolve a model name to its pricing")
		formatter.Item("/context <name>", "Look up a model's context window")
		formatter.Item("/switch <source>", "Switch the pricing source")
		formatter.Item("/refresh", "Re-fetch the current catalog")
		formatter.Item("/sources", "List pricing sources")
		formatter.Item("/exit, /quit", "Leave the shell")
		formatter.Println("")
		return false, nil

	case "/context":
		if len(parts) < 2 {
			return false, fmt.Errorf("usage: /context <model name>")
		}
		return false, runContext(ctx, strings.Join(parts[1:], " "))

	case "/switch":
		if len(parts) != 2 {
			return false, fmt.Errorf("usage: /switch <source>")
		}
		return false, runSwitch(ctx, parts[1])

	case "/refresh":
		return false, runRefresh(ctx)

	case "/sources":
		return false, runSources(ctx)

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", parts[0])
	}
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwire/taskwire/engine/card"
	"github.com/taskwire/taskwire/engine/domain"
	"github.com/taskwire/taskwire/engine/task"
	"github.com/taskwire/taskwire/engine/task/uc"
	"github.com/taskwire/taskwire/engine/webhook"
	"github.com/taskwire/taskwire/pkg/logger"
)

// SendCmd returns the send command.
func SendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Format a task card and post it to the configured webhook",
		Long: `Send builds a single task card from flags or from a JSON document and posts
it to the Google Chat webhook. With --dry-run the rendered card JSON is
printed instead of posting; with --markdown the markdown export is printed.`,
		RunE: handleSendCmd,
	}
	cmd.Flags().String("title", "", "Task title")
	cmd.Flags().String("summary", "", "One-line summary of the task")
	cmd.Flags().String("problem", "", "Problem statement")
	cmd.Flags().String("duration", "", "Estimated duration, e.g. '2 Gün'")
	cmd.Flags().String("domain", "",
		"Domain key: backend, frontend, devops, mobile, data, business or general")
	cmd.Flags().String("owner", "", "Owner of this task")
	cmd.Flags().StringSlice("participants", nil, "Participants, comma separated or repeated")
	cmd.Flags().String("file", "", "Path to a JSON document with the full submission")
	cmd.Flags().Bool("dry-run", false, "Print the rendered card JSON instead of posting")
	cmd.Flags().Bool("markdown", false, "Print the markdown export instead of posting")
	cmd.Flags().String("webhook-url", "", "Google Chat webhook URL (env: GOOGLE_CHAT_WEBHOOK_URL)")
	cmd.Flags().String("project", "", "Project prefix prepended to card titles (env: TASK_PROJECT)")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "markdown")
	return cmd
}

func handleSendCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := SetupGlobalConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newCommandLogger(cmd, cfg)
	if err != nil {
		return err
	}
	ctx := logger.ContextWithLogger(cmd.Context(), log)
	in, err := buildSendInput(cmd)
	if err != nil {
		return err
	}
	opts := task.Options{Project: cfg.Task.Project, DefaultOwner: cfg.Task.DefaultOwner}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return fmt.Errorf("failed to get markdown flag: %w", err)
	}
	if dryRun || markdown {
		return renderCardLocally(cmd, in, opts, markdown)
	}

	dispatcher := webhook.NewDispatcher(webhook.Config{
		URL:            cfg.Webhook.URL.Value(),
		Timeout:        cfg.Webhook.Timeout,
		ConnectTimeout: cfg.Webhook.ConnectTimeout,
	}, nil)
	res := uc.NewSendTask(domain.Default(), dispatcher, nil, opts, in).Execute(ctx)
	if !res.Success {
		return errors.New(res.Message)
	}
	if !cfg.CLI.Quiet {
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	}
	return nil
}

// buildSendInput assembles the submission from the optional JSON document and
// any explicitly set flags. Flags win over document fields.
func buildSendInput(cmd *cobra.Command) (*task.Input, error) {
	in := &task.Input{}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, fmt.Errorf("failed to get file flag: %w", err)
	}
	if file != "" {
		loaded, err := readInputFile(file)
		if err != nil {
			return nil, err
		}
		in = loaded
	}

	flags := cmd.Flags()
	applyString := func(name string, dst *string) {
		if flags.Changed(name) {
			if v, err := flags.GetString(name); err == nil {
				*dst = v
			}
		}
	}
	applyString("title", &in.Title)
	applyString("summary", &in.Summary)
	applyString("problem", &in.Problem)
	applyString("duration", &in.EstimatedDuration)
	applyString("domain", &in.Domain)
	applyString("owner", &in.TaskOwner)
	if flags.Changed("participants") {
		if v, err := flags.GetStringSlice("participants"); err == nil {
			in.Participants = task.StringList(v)
		}
	}
	return in, nil
}

func readInputFile(path string) (*task.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	in := &task.Input{}
	if err := json.Unmarshal(data, in); err != nil {
		return nil, fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	return in, nil
}

// renderCardLocally normalizes the submission and prints the requested
// rendering without touching the webhook.
func renderCardLocally(cmd *cobra.Command, in *task.Input, opts task.Options, markdown bool) error {
	resolved, err := task.Normalize(in, domain.Default(), opts)
	if err != nil {
		return err
	}
	desc := in.ResolveDescription()
	if markdown {
		fmt.Fprintln(cmd.OutOrStdout(), card.Markdown(resolved, desc))
		return nil
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(card.Build(resolved, desc))
}

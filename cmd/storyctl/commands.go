package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"story-relay/internal/app"
	"story-relay/internal/config"
	"story-relay/internal/logger"
	"story-relay/internal/models"
	"story-relay/internal/service"

	"github.com/spf13/cobra"
)

// withApp читает конфигурацию из --config, собирает App и вызывает fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, out io.Writer) error) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	level := "warn"
	if cfg.LogLevel == "debug" {
		level = cfg.LogLevel
	}
	log, err := logger.New(logger.Config{Level: level, Encoding: "console", OutputPath: "stderr", Service: "storyctl"})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	defer a.Close()

	return fn(ctx, a, cmd.OutOrStdout())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storyctl",
		Short:         "Administer collaborative stories",
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("config", "", "path to YAML config (environment is used when empty)")

	root.AddCommand(newStoriesCmd(), newSegmentsCmd(), newGenerateCmd(), newAIStatusCmd())
	return root
}

func newStoriesCmd() *cobra.Command {
	stories := &cobra.Command{
		Use:   "stories",
		Short: "Manage stories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stories, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				items := a.Stories.ListStories(ctx, status)
				if len(items) == 0 {
					fmt.Fprintln(out, "No stories found.")
					return nil
				}
				for _, s := range items {
					fmt.Fprintf(out, "%s  %-9s  %d  %s\n", s.ID, s.Status, s.CurrentParticipants, s.Title)
				}
				return nil
			})
		},
	}
	list.Flags().StringP("status", "s", "", "active, completed, archived or all (default)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a story as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				story, err := a.Stories.GetStory(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(out, story)
			})
		},
	}

	stories.AddCommand(list, show)
	for _, t := range []service.Transition{
		service.TransitionComplete,
		service.TransitionReactivate,
		service.TransitionArchive,
		service.TransitionRestore,
	} {
		stories.AddCommand(newTransitionCmd(t))
	}
	return stories
}

func newTransitionCmd(t service.Transition) *cobra.Command {
	return &cobra.Command{
		Use:   string(t) + " <id>",
		Short: "Apply the " + string(t) + " transition to a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				story, err := a.Stories.ApplyTransition(ctx, args[0], t)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Story %s is now %s\n", story.ID, story.Status)
				return nil
			})
		},
	}
}

func newSegmentsCmd() *cobra.Command {
	segments := &cobra.Command{
		Use:   "segments",
		Short: "Inspect story segments",
	}
	segments.AddCommand(&cobra.Command{
		Use:   "list <story-id>",
		Short: "List segments of a story in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				story, items, err := a.Stories.GetSegments(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%d segments)\n", story.Title, len(items))
				for _, s := range items {
					fmt.Fprintf(out, "#%d  %s  %s\n", s.OrderIndex, s.AuthorID, s.Content)
				}
				return nil
			})
		},
	})
	return segments
}

func newGenerateCmd() *cobra.Command {
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate parameters or story beginnings",
	}

	params := &cobra.Command{
		Use:   "params",
		Short: "Print random story parameters for a genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, _ := cmd.Flags().GetString("style")
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				return printJSON(out, a.Generation.GenerateParameters(style))
			})
		},
	}
	params.Flags().String("style", "fantasy", "genre")

	story := &cobra.Command{
		Use:   "story",
		Short: "Generate a story beginning and save it when scene fields are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			style, _ := flags.GetString("style")
			length, _ := flags.GetString("length")
			prompt, _ := flags.GetString("prompt")
			p := models.StoryParameters{}
			p.Time, _ = flags.GetString("time")
			p.Location, _ = flags.GetString("location")
			p.Characters, _ = flags.GetStringSlice("character")
			p.Action, _ = flags.GetString("action")
			p.Mood, _ = flags.GetString("mood")

			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				result, err := a.Generation.GenerateStory(ctx, models.StoryGenerationRequest{
					Prompt:     prompt,
					Parameters: &p,
					Style:      style,
					Length:     models.StoryLength(length),
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, result.Story)
				fmt.Fprintf(out, "\nprovider: %s\n", result.Provider)
				if result.Saved {
					fmt.Fprintf(out, "story_id: %s\n", result.StoryID)
				}
				return nil
			})
		},
	}
	sf := story.Flags()
	sf.String("style", "fantasy", "genre")
	sf.String("length", string(models.StoryLengthMedium), "short, medium or long")
	sf.String("prompt", "", "extra instructions for the AI model")
	sf.String("time", "", "time of the scene")
	sf.String("location", "", "location of the scene")
	sf.StringSlice("character", nil, "character (repeatable)")
	sf.String("action", "", "main action")
	sf.String("mood", "", "mood")

	generate.AddCommand(params, story)
	return generate
}

func newAIStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ai-status",
		Short: "Report whether an AI provider is configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				status := a.Generation.AIStatus()
				fmt.Fprintf(out, "ai_enabled: %t\nprovider: %s\n%s\n", status.Enabled, status.Provider, strings.TrimSpace(status.Message))
				return nil
			})
		},
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

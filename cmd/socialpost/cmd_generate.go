package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"socialpost/internal/generator"
	"socialpost/internal/logging"
	"socialpost/internal/types"
)

// Bounds applied before the configured maximums.
const (
	minCount         = 1
	defaultPostCount = 3
	defaultDays      = 7
)

type contentFlags struct {
	platform string
	tone     string
	topic    string
}

func (f *contentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.platform, "platform", "p", "Instagram", "Target platform: "+names(types.Platforms()))
	cmd.Flags().StringVarP(&f.tone, "tone", "t", "Friendly", "Tone of voice: "+names(types.Tones()))
	cmd.Flags().StringVar(&f.topic, "topic", "", "What the content is about (required)")
	_ = cmd.MarkFlagRequired("topic")
}

func (f *contentFlags) parse() (types.Platform, types.ToneOfVoice, error) {
	platform, err := types.ParsePlatform(f.platform)
	if err != nil {
		return 0, 0, err
	}
	tone, err := types.ParseTone(f.tone)
	if err != nil {
		return 0, 0, err
	}
	return platform, tone, nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		flags       contentFlags
		count       int
		contentType string
	)
	cmd := &cobra.Command{
		Use:   "generate <brand-id>",
		Short: "Generate posts for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}
			platform, tone, err := flags.parse()
			if err != nil {
				return err
			}
			ct, err := types.ParseContentType(contentType)
			if err != nil {
				return err
			}

			req := generator.PostsRequest{
				Platform:    platform,
				Tone:        tone,
				Count:       clamp(count, minCount, a.cfg.Generation.MaxPosts),
				ContentType: ct,
				Topic:       strings.TrimSpace(flags.topic),
			}
			if req.Count != count {
				logging.Get(logging.CategoryCLI).Warn("post count %d clamped to %d", count, req.Count)
			}

			svc, err := a.service(a.context(cmd))
			if err != nil {
				return err
			}
			drafts, err := svc.GeneratePosts(a.context(cmd), b, req)
			if err != nil {
				return err
			}
			posts := svc.MaterializePosts(drafts, req)
			a.store.AppendPosts(b.ID, posts)

			a.print(a.renderer.Posts(posts))
			a.print(a.renderer.Success("Saved %d posts to %s", len(posts), b.Name))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", defaultPostCount, "Number of posts")
	cmd.Flags().StringVar(&contentType, "type", "Social Post", "Content type: "+names(types.ContentTypes()))
	return cmd
}

func newCampaignCmd(a *app) *cobra.Command {
	var (
		flags contentFlags
		goal  string
		days  int
	)
	cmd := &cobra.Command{
		Use:   "campaign <brand-id>",
		Short: "Plan a multi-day campaign for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}
			platform, tone, err := flags.parse()
			if err != nil {
				return err
			}
			g, err := types.ParseCampaignGoal(goal)
			if err != nil {
				return err
			}

			req := generator.CampaignRequest{
				Goal:     g,
				Days:     clamp(days, minCount, a.cfg.Generation.MaxCampaignDays),
				Topic:    strings.TrimSpace(flags.topic),
				Platform: platform,
				Tone:     tone,
			}
			if req.Days != days {
				logging.Get(logging.CategoryCLI).Warn("campaign days %d clamped to %d", days, req.Days)
			}

			svc, err := a.service(a.context(cmd))
			if err != nil {
				return err
			}
			drafts, err := svc.GenerateCampaign(a.context(cmd), b, req)
			if err != nil {
				return err
			}
			posts := svc.MaterializeCampaign(drafts, req)
			a.store.AppendPosts(b.ID, posts)

			a.print(a.renderer.Posts(posts))
			a.print(a.renderer.Success("Saved %d-day campaign to %s", len(posts), b.Name))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&goal, "goal", "g", "", "Campaign goal: "+names(types.CampaignGoals()))
	cmd.Flags().IntVarP(&days, "days", "d", defaultDays, "Campaign length in days")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

func newIdeasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ideas <brand-id>",
		Short: "Suggest content topics for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service(a.context(cmd))
			if err != nil {
				return err
			}
			ideas, err := svc.GenerateTopicIdeas(a.context(cmd), b.Description, b.Dialect)
			if err != nil {
				return err
			}
			a.print(a.renderer.List(fmt.Sprintf("Topic ideas for %s", b.Name), ideas))
			return nil
		},
	}
}

func names[T fmt.Stringer](values []T) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return strings.Join(out, ", ")
}

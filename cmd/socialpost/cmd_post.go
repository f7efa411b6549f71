package main

import (
	"github.com/spf13/cobra"

	"socialpost/internal/diff"
	"socialpost/internal/generator"
	"socialpost/internal/types"
)

func newRefineCmd(a *app) *cobra.Command {
	var action, tone string
	cmd := &cobra.Command{
		Use:   "refine <brand-id> <post-id>",
		Short: "Rewrite a post and save the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, p, err := a.post(args[0], args[1])
			if err != nil {
				return err
			}
			r := generator.Refinement{}
			if r.Action, err = types.ParseRefinementAction(action); err != nil {
				return err
			}
			if tone != "" {
				if r.Tone, err = types.ParseTone(tone); err != nil {
					return err
				}
			}

			svc, err := a.service(a.context(cmd))
			if err != nil {
				return err
			}
			text, err := svc.RefinePost(a.context(cmd), p.Text, r, b.Dialect)
			if err != nil {
				return err
			}
			a.store.UpdatePost(b.ID, p.ID, types.PostUpdate{Text: &text})
			a.print(a.renderer.Revision(diff.Words(p.Text, text)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&action, "action", "a", "", "rephrase, shorten, lengthen or changeTone")
	cmd.Flags().StringVarP(&tone, "tone", "t", "", "Target tone for changeTone")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}

func newHashtagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hashtags <brand-id> <post-id>",
		Short: "Suggest hashtags for a post and save them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, p, err := a.post(args[0], args[1])
			if err != nil {
				return err
			}
			svc, err := a.service(a.context(cmd))
			if err != nil {
				return err
			}
			tags, err := svc.GenerateHashtags(a.context(cmd), p.Text, b.Dialect)
			if err != nil {
				return err
			}
			return a.updatePost(b.ID, p.ID, types.PostUpdate{Hashtags: tags, SetHashtags: true})
		},
	}
}

func newTaglineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tagline <brand-id> <post-id>",
		Short: "Write a short design phrase for a post and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, p, err := a.post(args[0], args[1])
			if err != nil {
				return err
			}
			svc, err := a.service(a.context(cmd))
			if err != nil {
				return err
			}
			phrase, err := svc.GenerateTagline(a.context(cmd), p.Text, b.Description, b.Dialect)
			if err != nil {
				return err
			}
			return a.updatePost(b.ID, p.ID, types.PostUpdate{TovPhrase: &phrase})
		},
	}
}

func newEnrichCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "enrich <brand-id>",
		Short: "Add hashtags to every post of a brand that has none",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}
			if limit < 1 {
				limit = a.cfg.Generation.EnrichConcurrency
			}
			svc, err := a.service(a.context(cmd))
			if err != nil {
				return err
			}
			n, err := svc.EnrichHashtags(a.context(cmd), a.store, b.ID, limit)
			if n > 0 {
				a.print(a.renderer.Success("Added hashtags to %d posts", n))
			}
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "concurrency", 0, "Parallel requests (default from config)")
	return cmd
}

func (a *app) updatePost(brandID, postID string, u types.PostUpdate) error {
	a.store.UpdatePost(brandID, postID, u)
	_, p, err := a.post(brandID, postID)
	if err != nil {
		return err
	}
	a.print(a.renderer.Post(p))
	return nil
}

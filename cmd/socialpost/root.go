package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree bound to a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "socialpost",
		Short: "Brand-aware social media content generator",
		Long: `socialpost writes social media posts and multi-day campaigns in the voice
of your brands, using Gemini.

Create a brand, optionally describe its identity, then generate:

  socialpost brand add --name "Bean There" --description "Specialty coffee" --dialect egyptian
  socialpost generate <brand-id> --platform instagram --tone friendly --count 3 --topic "new roast"
  socialpost campaign <brand-id> --goal launch --days 5 --topic "cold brew"

Set GEMINI_API_KEY (or llm.api_key in the config file) before generating.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", a.configPath, "Config file path")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "Keep brands in memory only for this run")
	root.PersistentFlags().BoolVar(&a.plain, "plain", false, "Disable colors and borders")

	root.AddCommand(
		newBrandCmd(a),
		newGenerateCmd(a),
		newCampaignCmd(a),
		newIdeasCmd(a),
		newRefineCmd(a),
		newHashtagsCmd(a),
		newTaglineCmd(a),
		newEnrichCmd(a),
		newHistoryCmd(a),
		newExportCmd(a),
		newWatchCmd(a),
		newUsageCmd(a),
	)
	return root
}

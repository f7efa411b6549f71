package main

import (
	"github.com/spf13/cobra"

	"socialpost/internal/logging"
	"socialpost/internal/types"
)

func newBrandCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brand",
		Short: "Manage brands",
	}
	cmd.AddCommand(
		newBrandAddCmd(a),
		newBrandListCmd(a),
		newBrandShowCmd(a),
		newBrandDeleteCmd(a),
		newBrandIdentityCmd(a),
	)
	return cmd
}

func newBrandAddCmd(a *app) *cobra.Command {
	var name, description, dialect string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a brand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := types.DefaultDialect
			if dialect != "" {
				parsed, err := types.ParseDialect(dialect)
				if err != nil {
					return err
				}
				d = parsed
			}
			b, err := a.store.AddBrand(name, description, d)
			if err != nil {
				return err
			}
			logging.Get(logging.CategoryCLI).Info("brand created: %s", b.ID)
			a.print(a.renderer.Success("Created brand %s (%s)", b.Name, b.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Brand name (required)")
	cmd.Flags().StringVar(&description, "description", "", "What the brand does (required)")
	cmd.Flags().StringVar(&dialect, "dialect", "", "Writing dialect: egyptian, gulf or english")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newBrandListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List brands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.print(a.renderer.BrandTable(a.store.Brands()))
			return nil
		},
	}
}

func newBrandShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <brand-id>",
		Short: "Show a brand and its identity profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}
			a.print(a.renderer.Brand(b))
			return nil
		},
	}
}

func newBrandDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <brand-id>",
		Short: "Delete a brand and all of its posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}
			a.store.DeleteBrand(b.ID)
			a.print(a.renderer.Success("Deleted brand %s and %d posts", b.Name, len(b.Posts)))
			return nil
		},
	}
}

func newBrandIdentityCmd(a *app) *cobra.Command {
	var (
		persona                     string
		pillars, use, avoid, sample []string
		reset                       bool
	)
	cmd := &cobra.Command{
		Use:   "identity <brand-id>",
		Short: "Set a brand's identity profile",
		Long: `Replaces the brand's identity profile with the given fields. Fields that are
not passed are left empty unless --merge is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}

			id := types.BrandIdentity{}
			if merge, _ := cmd.Flags().GetBool("merge"); merge {
				id = b.Identity
			}
			if reset {
				id = types.BrandIdentity{}
			}
			if cmd.Flags().Changed("persona") {
				id.AudiencePersona = persona
			}
			if cmd.Flags().Changed("pillar") {
				id.ContentPillars = pillars
			}
			if cmd.Flags().Changed("use") {
				id.BrandLexicon.KeywordsToUse = use
			}
			if cmd.Flags().Changed("avoid") {
				id.BrandLexicon.KeywordsToAvoid = avoid
			}
			if cmd.Flags().Changed("example") {
				id.SuccessExamples = sample
			}

			a.store.SaveIdentity(b.ID, id)
			b, _ = a.store.Brand(b.ID)
			a.print(a.renderer.Brand(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&persona, "persona", "", "Target audience persona")
	cmd.Flags().StringArrayVar(&pillars, "pillar", nil, "Content pillar (repeatable)")
	cmd.Flags().StringArrayVar(&use, "use", nil, "Keyword to use (repeatable)")
	cmd.Flags().StringArrayVar(&avoid, "avoid", nil, "Keyword to avoid (repeatable)")
	cmd.Flags().StringArrayVar(&sample, "example", nil, "Successful post example (repeatable)")
	cmd.Flags().Bool("merge", false, "Keep fields that are not passed")
	cmd.Flags().BoolVar(&reset, "clear", false, "Remove the identity profile")
	return cmd
}

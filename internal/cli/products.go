package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
)

func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "Fetch and print the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			ctx := logging.IntoContext(cmd.Context(), logger)

			svc := &service.CatalogService{
				Fetcher: catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout),
			}
			products, fetchErr := svc.Refresh(ctx)
			if err := RenderProducts(cmd.OutOrStdout(), products, rootOpts.Format); err != nil {
				return err
			}
			if fetchErr != nil {
				return fmt.Errorf("catalog unavailable: %w", fetchErr)
			}
			return nil
		},
	}
}

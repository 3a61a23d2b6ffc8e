package cli

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/app"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
)

type cartAddOptions struct {
	ProductID   int
	Title       string
	Price       string
	Description string
	Image       string
}

func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Add to and list the local cart",
	}
	cmd.AddCommand(newCartAddCommand(rootOpts))
	cmd.AddCommand(newCartListCommand(rootOpts))
	return cmd
}

func newCartAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &cartAddOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the cart",
		Long: `Add a product to the cart, either by catalog id (--product-id), which
fetches the catalog first, or from explicit fields (--title, --price, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartAdd(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().IntVar(&opts.ProductID, "product-id", 0, "catalog id of the product to add")
	cmd.Flags().StringVar(&opts.Title, "title", "", "product title")
	cmd.Flags().StringVar(&opts.Price, "price", "", "product price, e.g. 19.99")
	cmd.Flags().StringVar(&opts.Description, "description", "", "product description")
	cmd.Flags().StringVar(&opts.Image, "image", "", "product image URL")
	cmd.MarkFlagsMutuallyExclusive("product-id", "title")
	cmd.MarkFlagsOneRequired("product-id", "title")

	return cmd
}

func newCartListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the items in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := logging.IntoContext(cmd.Context(), a.Logger)
			items, err := a.Cart.List(ctx)
			if err != nil {
				return fmt.Errorf("cart unavailable: %w", err)
			}
			return RenderCart(cmd.OutOrStdout(), items, rootOpts.Format)
		},
	}
}

func runCartAdd(cmd *cobra.Command, rootOpts *RootOptions, opts *cartAddOptions) error {
	a, err := startApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := logging.IntoContext(cmd.Context(), a.Logger)

	var product models.Product
	if cmd.Flags().Changed("product-id") {
		if _, err := a.Catalog.Refresh(ctx); err != nil {
			return fmt.Errorf("catalog unavailable: %w", err)
		}
		p, ok := a.Catalog.Find(opts.ProductID)
		if !ok {
			return fmt.Errorf("product %d not found in catalog", opts.ProductID)
		}
		product = p
	} else {
		price, err := decimal.NewFromString(opts.Price)
		if err != nil {
			return fmt.Errorf("invalid --price %q: %w", opts.Price, service.ErrValidation)
		}
		product = models.Product{
			Title:       opts.Title,
			Price:       price,
			Description: opts.Description,
			Image:       opts.Image,
		}
	}

	item, err := a.Cart.Add(ctx, product)
	if err != nil {
		return err
	}

	if rootOpts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"message": service.AddedMessage, "item": item})
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s  %s\n", service.AddedMessage, item.Title, models.FormatPrice(item.Price))
	return err
}

// startApp builds the shared dependencies and initializes the cart store.
func startApp(cmd *cobra.Command) (*app.App, error) {
	cfg, logger, err := bootstrap(cmd)
	if err != nil {
		return nil, err
	}
	a := app.New(cfg, logger)
	if err := a.Start(cmd.Context()); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	return a, nil
}

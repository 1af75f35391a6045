// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
)

func newProductsCmd(app *App) *cobra.Command {
	var (
		category    string
		featured    bool
		bestSellers bool
		ids         []string
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Long: `Lists products. Filters are exclusive and checked in the order
--ids, --category, --featured, --best-sellers. Without one every stored
product is listed, newest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return errors.New("limit must not be negative")
			}
			ctx, cancel := app.context(cmd)
			defer cancel()

			var (
				products []catalog.Product
				err      error
			)
			switch {
			case len(ids) > 0:
				products, err = app.Catalog.ByIDs(ctx, ids)
			case category != "":
				products = app.Catalog.ByCategory(ctx, category)
			case featured:
				products = app.Catalog.Featured(ctx, limit)
			case bestSellers:
				products = app.Catalog.BestSellers(ctx, limit)
			default:
				products, err = app.Catalog.All(ctx)
			}
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}
			if limit > 0 && len(products) > limit {
				products = products[:limit]
			}
			return printProducts(cmd, products)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only products of this category")
	cmd.Flags().BoolVar(&featured, "featured", false, "only featured products")
	cmd.Flags().BoolVar(&bestSellers, "best-sellers", false, "only best sellers")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "comma separated product ids, in order")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of products (0 = no limit)")
	return cmd
}

func newSimilarCmd(app *App) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "similar [product-id]",
		Short: "Show products similar to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			recs, err := app.Recommender.ForProduct(ctx, args[0], k)
			if err != nil {
				return fmt.Errorf("similar products: %w", err)
			}
			return printRecommendations(cmd, recs)
		},
	}
	cmd.Flags().IntVarP(&k, "top", "k", 0, "number of results (0 = configured default)")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Find products matching a description",
		Long: `Ranks products by TF-IDF cosine similarity between the query and each
product's name, description and category. Words the catalog never uses are
ignored. Multiple arguments are joined into one query.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			recs, err := app.Recommender.ForQuery(ctx, strings.Join(args, " "), k)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			return printRecommendations(cmd, recs)
		},
	}
	cmd.Flags().IntVarP(&k, "top", "k", 0, "number of results (0 = configured default)")
	return cmd
}

func newDeliveryCmd(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delivery [pin]",
		Short: "Estimate delivery time for a 6-digit PIN code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := catalog.EstimateDelivery(args[0])
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, est)
			}
			cmd.Println(est.Message)
			return nil
		},
	}
}

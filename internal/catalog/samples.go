// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package catalog

import "time"

// Sample group names, in corpus traversal order.
const (
	GroupNewArrivals = "new_arrivals"
	GroupBestSellers = "best_sellers"
)

// Categories lists the storefront categories in display order.
var Categories = []string{
	"short_kurti",
	"long_kurti",
	"frock",
	"full_sleeve",
	"sleeveless",
	"backless",
}

const (
	defaultSampleDescription = "Sample product for preview. Add real products in Supabase to enable cart."
	newArrivalDescription    = "Sample new arrival. Add real products in Supabase to enable cart."
	bestSellerDescription    = "Sample best seller. Add real products in Supabase to enable cart."
)

var sampleTime = time.Now().UTC()

type sampleFlags struct {
	featured    bool
	bestSeller  bool
	description string
}

func sample(id, name, category, image string, orig, disc, rating float64, sold int64, flags sampleFlags) Product {
	desc := flags.description
	if desc == "" {
		desc = defaultSampleDescription
	}
	return Product{
		ID:              id,
		Name:            name,
		Description:     desc,
		Category:        category,
		ImageURL:        image,
		OriginalPrice:   orig,
		DiscountedPrice: disc,
		Rating:          rating,
		SoldCount:       sold,
		StockQuantity:   50,
		Sizes:           []string{"S", "M", "L", "XL"},
		Colors:          []string{"Cream", "Red", "Black"},
		IsFeatured:      flags.featured,
		IsBestSeller:    flags.bestSeller,
		CreatedAt:       sampleTime,
		UpdatedAt:       sampleTime,
	}
}

func newArrival(id, name, category, image string, orig, disc, rating float64, sold int64) Product {
	return sample(id, name, category, image, orig, disc, rating, sold,
		sampleFlags{featured: true, description: newArrivalDescription})
}

func bestSeller(id, name, category, image string, orig, disc, rating float64, sold int64) Product {
	return sample(id, name, category, image, orig, disc, rating, sold,
		sampleFlags{bestSeller: true, description: bestSellerDescription})
}

func plain(id, name, category, image string, orig, disc float64) Product {
	return sample(id, name, category, image, orig, disc, 4.4, 120, sampleFlags{})
}

var newArrivalSamples = []Product{
	newArrival("sample-na-1", "Floral Print Short Kurti", "short_kurti", "/images/category_sleevless.jpg", 1999, 1399, 4.5, 210),
	newArrival("sample-na-2", "Elegant Long Kurti", "long_kurti", "/images/category_longkurti.png", 2999, 2099, 4.8, 345),
	newArrival("sample-na-3", "Party Wear Frock", "frock", "/images/frock white.png", 3499, 2449, 4.9, 423),
	newArrival("sample-na-4", "Designer Full Sleeve Kurti", "full_sleeve", "/images/fullsleeve_red.png", 2799, 1959, 4.7, 234),
	newArrival("sample-na-5", "Designer Sleeveless Kurti", "sleeveless", "/images/category_sleevless.jpg", 2399, 1679, 4.6, 212),
}

var bestSellerSamples = []Product{
	bestSeller("sample-bs-1", "Top Rated Long Kurti", "long_kurti", "/images/category_longkurti.png", 2899, 1999, 4.8, 560),
	bestSeller("sample-bs-2", "Best Seller Frock", "frock", "/images/frock white.png", 3299, 2349, 4.9, 610),
	bestSeller("sample-bs-3", "Popular Full Sleeve Kurti", "full_sleeve", "/images/fullsleeve_red.png", 2599, 1899, 4.7, 480),
	bestSeller("sample-bs-4", "Trending Sleeveless Kurti", "sleeveless", "/images/category_sleevless.jpg", 2199, 1599, 4.6, 430),
	bestSeller("sample-bs-5", "Backless Party Kurti", "backless", "/images/category_backless.png", 2799, 1999, 4.8, 520),
}

// categorySamples is ordered to match Categories.
var categorySamples = []Group{
	{Name: "short_kurti", Products: []Product{
		plain("sample-short-1", "Aanya Short Kurti", "short_kurti", "/images/fullsleeve_cream.png", 1399, 999),
		plain("sample-short-2", "Naira Cotton Short Kurti", "short_kurti", "/images/fullsleeve_cream.png", 1599, 1199),
		plain("sample-short-3", "Ira Printed Short Kurti", "short_kurti", "/images/fullsleeve_cream.png", 1299, 899),
		plain("sample-short-4", "Myra Everyday Short Kurti", "short_kurti", "/images/fullsleeve_cream.png", 1499, 1099),
	}},
	{Name: "long_kurti", Products: []Product{
		plain("sample-long-1", "Anika Long Kurti", "long_kurti", "/images/category_longkurti.png", 1999, 1499),
		plain("sample-long-2", "Siya Flared Long Kurti", "long_kurti", "/images/category_longkurti.png", 1899, 1399),
		plain("sample-long-3", "Dia Straight Long Kurti", "long_kurti", "/images/category_longkurti.png", 1799, 1299),
		plain("sample-long-4", "Rhea Anarkali Kurti", "long_kurti", "/images/category_longkurti.png", 2199, 1699),
	}},
	{Name: "frock", Products: []Product{
		plain("sample-frock-1", "Zara Summer Frock", "frock", "/images/frock white.png", 1699, 1199),
		plain("sample-frock-2", "Kiara Floral Frock", "frock", "/images/frock white.png", 1599, 1099),
		plain("sample-frock-3", "Mira Casual Frock", "frock", "/images/frock white.png", 1499, 999),
		plain("sample-frock-4", "Tara Party Frock", "frock", "/images/frock white.png", 1999, 1499),
	}},
	{Name: "full_sleeve", Products: []Product{
		plain("sample-full-1", "Nysa Full Sleeve Kurti", "full_sleeve", "/images/fullsleeve_red.png", 1699, 1199),
		plain("sample-full-2", "Aarvi Solid Full Sleeve", "full_sleeve", "/images/fullsleeve_red.png", 1599, 1099),
		plain("sample-full-3", "Kaira Work Full Sleeve", "full_sleeve", "/images/fullsleeve_red.png", 1899, 1399),
		plain("sample-full-4", "Reva Rayon Full Sleeve", "full_sleeve", "/images/fullsleeve_red.png", 1499, 999),
	}},
	{Name: "sleeveless", Products: []Product{
		plain("sample-sleeveless-1", "Pihu Sleeveless Kurti", "sleeveless", "/images/category_sleevless.jpg", 1399, 999),
		plain("sample-sleeveless-2", "Riya Summer Sleeveless", "sleeveless", "/images/category_sleevless.jpg", 1499, 1099),
		plain("sample-sleeveless-3", "Isha Flowy Sleeveless", "sleeveless", "/images/category_sleevless.jpg", 1599, 1199),
		plain("sample-sleeveless-4", "Sara Chic Sleeveless", "sleeveless", "/images/category_sleevless.jpg", 1699, 1299),
	}},
	{Name: "backless", Products: []Product{
		plain("sample-backless-1", "Avni Backless Kurti", "backless", "/images/category_backless.png", 1899, 1399),
		plain("sample-backless-2", "Tanishi Elegant Backless", "backless", "/images/category_backless.png", 1999, 1499),
		plain("sample-backless-3", "Misha Festive Backless", "backless", "/images/category_backless.png", 1799, 1299),
		plain("sample-backless-4", "Nisha Casual Backless", "backless", "/images/category_backless.png", 1699, 1199),
	}},
}

// SampleGroups returns copies of the built-in sample groups in traversal order:
// new arrivals, best sellers, then one group per category.
func SampleGroups() []Group {
	groups := make([]Group, 0, 2+len(categorySamples))
	groups = append(groups,
		Group{Name: GroupNewArrivals, Products: cloneAll(newArrivalSamples)},
		Group{Name: GroupBestSellers, Products: cloneAll(bestSellerSamples)},
	)
	for _, g := range categorySamples {
		groups = append(groups, Group{Name: g.Name, Products: cloneAll(g.Products)})
	}
	return groups
}

// NewArrivalSamples returns the featured sample products.
func NewArrivalSamples() []Product { return cloneAll(newArrivalSamples) }

// BestSellerSamples returns the best-seller sample products.
func BestSellerSamples() []Product { return cloneAll(bestSellerSamples) }

// CategorySamples returns the sample products for a category, or nil.
func CategorySamples(category string) []Product {
	for _, g := range categorySamples {
		if g.Name == category {
			return cloneAll(g.Products)
		}
	}
	return nil
}

// SampleByID searches new arrivals, then best sellers, then category groups.
func SampleByID(id string) (Product, bool) {
	for _, set := range [][]Product{newArrivalSamples, bestSellerSamples} {
		for i := range set {
			if set[i].ID == id {
				return set[i].Clone(), true
			}
		}
	}
	for _, g := range categorySamples {
		for i := range g.Products {
			if g.Products[i].ID == id {
				return g.Products[i].Clone(), true
			}
		}
	}
	return Product{}, false
}

func cloneAll(in []Product) []Product {
	out := make([]Product, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

package catalog

import (
	"time"

	"github.com/example/trendyshop/pkg/models"
)

// Categories offered by the shop filters.
var Categories = []string{"All", "Lifestyle", "Smart Home", "Wearables", "Office Tech", "Gaming", "Audio"}

// SeedProducts is the initial catalog used when no products snapshot
// exists yet. Newest first, matching store ordering.
func SeedProducts() []models.Product {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	at := func(days int) time.Time { return base.AddDate(0, 0, days) }

	return []models.Product{
		{
			ID:           "p8",
			Name:         "Aurora Smart Lamp",
			Description:  "App-controlled ambient lamp with 16M colours and sunrise alarm.",
			Category:     "Smart Home",
			Price:        2499,
			OldPrice:     2999,
			Stock:        24,
			Brand:        "Trendy Gadgets",
			Tags:         []string{"lighting", "smart home", "gift"},
			Images:       []string{"https://picsum.photos/seed/lamp/600/600"},
			Rating:       4.6,
			ReviewsCount: 182,
			IsFeatured:   true,
			Status:       models.StatusActive,
			CreatedAt:    at(7),
			UpdatedAt:    at(7),
		},
		{
			ID:           "p7",
			Name:         "Pulse Fitness Band",
			Description:  "Slim fitness tracker with heart-rate, SpO2 and 10-day battery.",
			Category:     "Wearables",
			Price:        1799,
			Stock:        40,
			Brand:        "Trendy Gadgets",
			Tags:         []string{"fitness", "wearable"},
			Images:       []string{"https://picsum.photos/seed/band/600/600"},
			Rating:       4.2,
			ReviewsCount: 95,
			IsFeatured:   true,
			Status:       models.StatusActive,
			CreatedAt:    at(6),
			UpdatedAt:    at(6),
		},
		{
			ID:            "p6",
			Name:          "Echo Mini Speaker",
			Description:   "Palm-sized bluetooth speaker with surprisingly big sound.",
			Category:      "Audio",
			Price:         1299,
			DiscountPrice: 999,
			Stock:         0,
			Brand:         "SoundCore",
			Tags:          []string{"audio", "portable"},
			Images:        []string{"https://picsum.photos/seed/speaker/600/600"},
			Rating:        4.0,
			ReviewsCount:  210,
			Status:        models.StatusOutOfStock,
			CreatedAt:     at(5),
			UpdatedAt:     at(5),
		},
		{
			ID:           "p5",
			Name:         "Drift Mechanical Keyboard",
			Description:  "Hot-swappable 75% keyboard with gasket mount and RGB.",
			Category:     "Office Tech",
			Subcategory:  "Keyboards",
			Price:        5499,
			Stock:        12,
			Brand:        "KeyForge",
			Tags:         []string{"keyboard", "mechanical", "office"},
			Images:       []string{"https://picsum.photos/seed/keyboard/600/600"},
			Rating:       4.8,
			ReviewsCount: 64,
			IsFeatured:   true,
			Status:       models.StatusActive,
			CreatedAt:    at(4),
			UpdatedAt:    at(4),
		},
		{
			ID:           "p4",
			Name:         "Nimbus Wireless Charger",
			Description:  "3-in-1 fold-flat charging pad for phone, buds and watch.",
			Category:     "Lifestyle",
			Price:        2199,
			Stock:        31,
			Brand:        "Trendy Gadgets",
			Tags:         []string{"charging", "travel"},
			Images:       []string{"https://picsum.photos/seed/charger/600/600"},
			Rating:       4.3,
			ReviewsCount: 120,
			Status:       models.StatusActive,
			CreatedAt:    at(3),
			UpdatedAt:    at(3),
		},
		{
			ID:           "p3",
			Name:         "Orbit Game Controller",
			Description:  "Low-latency controller with hall-effect sticks, PC and mobile.",
			Category:     "Gaming",
			Price:        3299,
			Stock:        18,
			Brand:        "Orbit",
			Tags:         []string{"gaming", "controller"},
			Images:       []string{"https://picsum.photos/seed/controller/600/600"},
			Rating:       4.5,
			ReviewsCount: 77,
			Status:       models.StatusActive,
			CreatedAt:    at(2),
			UpdatedAt:    at(2),
		},
		{
			ID:           "p2",
			Name:         "Focus Desk Organizer",
			Description:  "Minimalist bamboo organizer with hidden cable routing.",
			Category:     "Office Tech",
			Price:        899,
			Stock:        55,
			Brand:        "Trendy Gadgets",
			Tags:         []string{"desk", "organizer", "gift"},
			Images:       []string{"https://picsum.photos/seed/organizer/600/600"},
			Rating:       4.1,
			ReviewsCount: 43,
			Status:       models.StatusActive,
			CreatedAt:    at(1),
			UpdatedAt:    at(1),
		},
		{
			ID:           "p1",
			Name:         "Lumen Smart Doorbell",
			Description:  "2K video doorbell with local storage and instant alerts.",
			Category:     "Smart Home",
			Price:        6499,
			Stock:        9,
			Brand:        "Lumen",
			Tags:         []string{"security", "smart home"},
			Images:       []string{"https://picsum.photos/seed/doorbell/600/600"},
			Rating:       4.7,
			ReviewsCount: 150,
			IsFeatured:   true,
			Status:       models.StatusActive,
			CreatedAt:    at(0),
			UpdatedAt:    at(0),
		},
	}
}

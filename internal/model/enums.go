package model

import (
	"fmt"
	"slices"
	"strings"
)

// Channel is a notification delivery medium.
type Channel string

const (
	ChannelEmail    Channel = "EMAIL"
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelSMS      Channel = "SMS"
	ChannelApp      Channel = "APP"
)

// Channels lists every channel in display order.
var Channels = []Channel{ChannelEmail, ChannelWhatsApp, ChannelSMS, ChannelApp}

// Category is a user interest topic used for preference filtering.
type Category string

const (
	CategorySports        Category = "SPORTS"
	CategoryNews          Category = "NEWS"
	CategoryWeather       Category = "WEATHER"
	CategoryShopping      Category = "SHOPPING"
	CategoryFinance       Category = "FINANCE"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHealth        Category = "HEALTH"
	CategoryTechnology    Category = "TECHNOLOGY"
	CategoryTravel        Category = "TRAVEL"
	CategorySocial        Category = "SOCIAL"
	CategoryEducation     Category = "EDUCATION"
	CategoryPromotions    Category = "PROMOTIONS"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategorySports, CategoryNews, CategoryWeather, CategoryShopping,
	CategoryFinance, CategoryEntertainment, CategoryHealth, CategoryTechnology,
	CategoryTravel, CategorySocial, CategoryEducation, CategoryPromotions,
}

// ParseSet validates the selected values against the fixed set all and
// returns them in the order of all, without duplicates. Matching ignores case
// and surrounding whitespace. Empty entries are skipped.
func ParseSet[T ~string](all []T, selected []string) ([]T, error) {
	picked := make(map[T]bool, len(selected))
	for _, raw := range selected {
		s := strings.ToUpper(strings.TrimSpace(raw))
		if s == "" {
			continue
		}
		v := T(s)
		if !slices.Contains(all, v) {
			return nil, fmt.Errorf("unknown value %q; want one of %v", raw, all)
		}
		picked[v] = true
	}

	out := make([]T, 0, len(picked))
	for _, v := range all {
		if picked[v] {
			out = append(out, v)
		}
	}
	return out, nil
}

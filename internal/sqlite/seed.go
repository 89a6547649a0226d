package sqlite

import "github.com/mesh-intelligence/swatch/pkg/types"

type defaultToken struct {
	key, value, description string
}

// defaultGroups is the built-in default set, one group per category.
var defaultGroups = []struct {
	category types.Category
	tokens   []defaultToken
}{
	{types.CategoryColor, []defaultToken{
		{"color/brand/primary", "#FF1D6C", "Primary brand color"},
		{"color/brand/secondary", "#2979FF", "Secondary brand color"},
		{"color/brand/accent", "#F5A623", "Accent color"},
		{"color/brand/violet", "#9C27B0", "Violet brand color"},
		{"color/text/primary", "#0F0F0F", "Primary text"},
		{"color/text/secondary", "#4B5563", "Secondary text"},
		{"color/bg/base", "#FFFFFF", "Base background"},
		{"color/bg/surface", "#F9FAFB", "Surface background"},
		{"color/semantic/success", "#16A34A", "Success state"},
		{"color/semantic/error", "#DC2626", "Error state"},
		{"color/semantic/warning", "#D97706", "Warning state"},
	}},
	{types.CategorySpacing, []defaultToken{
		{"spacing/1", "4px", "4px spacing"},
		{"spacing/2", "8px", "8px spacing"},
		{"spacing/3", "12px", "12px spacing"},
		{"spacing/4", "16px", "16px spacing"},
		{"spacing/6", "24px", "24px spacing"},
		{"spacing/8", "32px", "32px spacing"},
		{"spacing/12", "48px", "48px spacing"},
		{"spacing/16", "64px", "64px spacing"},
	}},
	{types.CategoryRadius, []defaultToken{
		{"radius/sm", "4px", "Small radius"},
		{"radius/md", "8px", "Medium radius"},
		{"radius/lg", "12px", "Large radius"},
		{"radius/xl", "16px", "Extra large radius"},
		{"radius/full", "9999px", "Pill radius"},
	}},
	{types.CategoryTypography, []defaultToken{
		{"typography/size/xs", "0.75rem", "Extra small text"},
		{"typography/size/sm", "0.875rem", "Small text"},
		{"typography/size/md", "1rem", "Body text"},
		{"typography/size/lg", "1.125rem", "Large text"},
		{"typography/size/xl", "1.25rem", "Extra large text"},
		{"typography/size/2xl", "1.5rem", "Heading text"},
		{"typography/size/4xl", "2.25rem", "Display text"},
	}},
	{types.CategoryShadow, []defaultToken{
		{"shadow/sm", "0 1px 2px rgba(0,0,0,0.05)", "Small shadow"},
		{"shadow/md", "0 4px 6px -1px rgba(0,0,0,0.1)", "Medium shadow"},
		{"shadow/lg", "0 10px 15px -3px rgba(0,0,0,0.1)", "Large shadow"},
		{"shadow/xl", "0 20px 25px -5px rgba(0,0,0,0.1)", "Extra large shadow"},
	}},
	{types.CategoryOpacity, []defaultToken{
		{"opacity/disabled", "0.4", "Disabled controls"},
		{"opacity/muted", "0.6", "Muted content"},
		{"opacity/overlay", "0.8", "Modal overlay"},
	}},
	{types.CategoryZIndex, []defaultToken{
		{"z-index/dropdown", "1000", "Dropdown menus"},
		{"z-index/sticky", "1100", "Sticky headers"},
		{"z-index/modal", "1300", "Modal dialogs"},
		{"z-index/toast", "1400", "Toast notifications"},
	}},
	{types.CategoryBreakpoint, []defaultToken{
		{"breakpoint/sm", "640px", "Small screens"},
		{"breakpoint/md", "768px", "Medium screens"},
		{"breakpoint/lg", "1024px", "Large screens"},
		{"breakpoint/xl", "1280px", "Extra large screens"},
	}},
	{types.CategoryMotion, []defaultToken{
		{"motion/fast", "150ms", "Fast transitions"},
		{"motion/base", "250ms", "Default transitions"},
		{"motion/slow", "400ms", "Slow transitions"},
	}},
	{types.CategoryBorder, []defaultToken{
		{"border/default", "1px solid #E5E7EB", "Default border"},
		{"border/strong", "2px solid #0F0F0F", "Emphasised border"},
	}},
}

// DefaultTokens returns a fresh copy of the built-in default token set.
func DefaultTokens() []types.Token {
	var out []types.Token
	for _, g := range defaultGroups {
		for _, d := range g.tokens {
			out = append(out, types.Token{
				Key:         d.key,
				Value:       d.value,
				Category:    g.category,
				Description: d.description,
			})
		}
	}
	return out
}

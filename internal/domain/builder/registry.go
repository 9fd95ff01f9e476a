package builder

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Component kinds. A page component whose Type is not one of these is
// skipped at render time rather than treated as an error.
const (
	KindHeader       = "header"
	KindHero         = "hero"
	KindFeatures     = "features"
	KindTestimonials = "testimonials"
	KindPricing      = "pricing"
	KindFAQ          = "faq"
	KindContact      = "contact"
	KindImage        = "image"
	KindVideo        = "video"
	KindText         = "text"
	KindButton       = "button"
	KindCustomHTML   = "customHtml"
	KindFooter       = "footer"
	KindAuthorBox    = "authorBox"
	KindCTA          = "cta"
)

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type HeaderContent struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

type HeroContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTA      string `json:"cta"`
	CTAHref  string `json:"ctaHref"`
}

type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type FeaturesContent struct {
	Title string        `json:"title"`
	Items []FeatureItem `json:"items"`
}

type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

type TestimonialsContent struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

type PricingTier struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Period   string   `json:"period"`
	Features []string `json:"features"`
	CTA      string   `json:"cta"`
}

type PricingContent struct {
	Title string        `json:"title"`
	Tiers []PricingTier `json:"tiers"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQContent struct {
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

type ContactContent struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	ButtonLabel string `json:"buttonLabel"`
	Email       string `json:"email"`
}

type ImageContent struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type VideoContent struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type TextContent struct {
	Text string `json:"text"`
}

type ButtonContent struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Variant string `json:"variant"`
}

type CustomHTMLContent struct {
	HTML string `json:"html"`
}

type FooterContent struct {
	Copyright string `json:"copyright"`
	Links     []Link `json:"links"`
}

type AuthorBoxContent struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

type CTAContent struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	ButtonLabel string `json:"buttonLabel"`
	ButtonHref  string `json:"buttonHref"`
}

// defaultContent holds the placeholder content for a freshly added
// component of each kind. Values are cloned on every lookup so callers
// can mutate freely.
var defaultContent = map[string]func() any{
	KindHeader: func() any {
		return HeaderContent{
			Title: "Your Brand",
			Links: []Link{
				{Label: "Home", Href: "#"},
				{Label: "Features", Href: "#features"},
				{Label: "Pricing", Href: "#pricing"},
			},
		}
	},
	KindHero: func() any {
		return HeroContent{
			Title:    "Launch Your Next Big Thing",
			Subtitle: "Everything you need to build, market and sell online.",
			CTA:      "Get Started",
			CTAHref:  "#",
		}
	},
	KindFeatures: func() any {
		return FeaturesContent{
			Title: "Why Choose Us",
			Items: []FeatureItem{
				{Title: "Drag & Drop", Description: "Build pages visually, no code required.", Icon: "cursor"},
				{Title: "Built-in CRM", Description: "Track every lead from first click to close.", Icon: "users"},
				{Title: "Email Marketing", Description: "Newsletters and campaigns in one place.", Icon: "mail"},
			},
		}
	},
	KindTestimonials: func() any {
		return TestimonialsContent{
			Title: "What Our Customers Say",
			Items: []Testimonial{
				{Quote: "This platform doubled our conversion rate.", Author: "Jamie Rivera", Role: "Founder, Acme Co"},
				{Quote: "The easiest funnel builder I have ever used.", Author: "Sam Lee", Role: "Marketing Lead"},
			},
		}
	},
	KindPricing: func() any {
		return PricingContent{
			Title: "Simple Pricing",
			Tiers: []PricingTier{
				{Name: "Starter", Price: "$29", Period: "mo", Features: []string{"1 website", "Basic CRM", "Email support"}, CTA: "Start Free"},
				{Name: "Pro", Price: "$97", Period: "mo", Features: []string{"Unlimited funnels", "Full CRM", "AI copy tools"}, CTA: "Go Pro"},
			},
		}
	},
	KindFAQ: func() any {
		return FAQContent{
			Title: "Frequently Asked Questions",
			Items: []FAQItem{
				{Question: "Can I cancel anytime?", Answer: "Yes, you can cancel your plan at any time."},
				{Question: "Do I need to know how to code?", Answer: "No, everything is drag and drop."},
			},
		}
	},
	KindContact: func() any {
		return ContactContent{
			Title:       "Get In Touch",
			Subtitle:    "We usually reply within one business day.",
			ButtonLabel: "Send Message",
			Email:       "hello@example.com",
		}
	},
	KindImage: func() any {
		return ImageContent{Src: "https://placehold.co/1200x600", Alt: "Placeholder image", Caption: ""}
	},
	KindVideo: func() any {
		return VideoContent{URL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Title: "Watch the demo"}
	},
	KindText: func() any {
		return TextContent{Text: "Write something compelling here."}
	},
	KindButton: func() any {
		return ButtonContent{Label: "Click Me", Href: "#", Variant: "primary"}
	},
	KindCustomHTML: func() any {
		return CustomHTMLContent{HTML: "<div>Custom HTML block</div>"}
	},
	KindFooter: func() any {
		return FooterContent{
			Copyright: "© 2026 Your Brand. All rights reserved.",
			Links: []Link{
				{Label: "Privacy", Href: "/privacy"},
				{Label: "Terms", Href: "/terms"},
			},
		}
	},
	KindAuthorBox: func() any {
		return AuthorBoxContent{
			Name:   "Alex Author",
			Bio:    "Writes about marketing, funnels and growth.",
			Avatar: "https://placehold.co/96x96",
		}
	},
	KindCTA: func() any {
		return CTAContent{
			Title:       "Ready to launch?",
			Subtitle:    "Join thousands of marketers already on board.",
			ButtonLabel: "Start Your Free Trial",
			ButtonHref:  "#",
		}
	},
}

// KnownKind reports whether kind is a registered component kind.
func KnownKind(kind string) bool {
	_, ok := defaultContent[kind]
	return ok
}

// Kinds returns every registered component kind.
func Kinds() []string {
	out := make([]string, 0, len(defaultContent))
	for k := range defaultContent {
		out = append(out, k)
	}
	return out
}

// DefaultContent returns the typed placeholder content for kind, or
// (nil, false) for an unknown kind.
func DefaultContent(kind string) (any, bool) {
	fn, ok := defaultContent[kind]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// DefaultProps returns the placeholder content for kind serialized as a
// props blob ready to store on a PageComponent.
func DefaultProps(kind string) (datatypes.JSON, bool) {
	content, ok := DefaultContent(kind)
	if !ok {
		return nil, false
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, false
	}
	return datatypes.JSON(raw), true
}

// DecodeContent decodes a props blob into the typed content struct for
// kind. Missing fields keep their zero values; unknown kinds return
// (nil, false).
func DecodeContent(kind string, props []byte) (any, bool) {
	fn, ok := defaultContent[kind]
	if !ok {
		return nil, false
	}
	// decode into a pointer to the same concrete type as the default
	target := fn()
	switch target.(type) {
	case HeaderContent:
		v := HeaderContent{}
		json.Unmarshal(props, &v)
		return v, true
	case HeroContent:
		v := HeroContent{}
		json.Unmarshal(props, &v)
		return v, true
	case FeaturesContent:
		v := FeaturesContent{}
		json.Unmarshal(props, &v)
		return v, true
	case TestimonialsContent:
		v := TestimonialsContent{}
		json.Unmarshal(props, &v)
		return v, true
	case PricingContent:
		v := PricingContent{}
		json.Unmarshal(props, &v)
		return v, true
	case FAQContent:
		v := FAQContent{}
		json.Unmarshal(props, &v)
		return v, true
	case ContactContent:
		v := ContactContent{}
		json.Unmarshal(props, &v)
		return v, true
	case ImageContent:
		v := ImageContent{}
		json.Unmarshal(props, &v)
		return v, true
	case VideoContent:
		v := VideoContent{}
		json.Unmarshal(props, &v)
		return v, true
	case TextContent:
		v := TextContent{}
		json.Unmarshal(props, &v)
		return v, true
	case ButtonContent:
		v := ButtonContent{}
		json.Unmarshal(props, &v)
		return v, true
	case CustomHTMLContent:
		v := CustomHTMLContent{}
		json.Unmarshal(props, &v)
		return v, true
	case FooterContent:
		v := FooterContent{}
		json.Unmarshal(props, &v)
		return v, true
	case AuthorBoxContent:
		v := AuthorBoxContent{}
		json.Unmarshal(props, &v)
		return v, true
	case CTAContent:
		v := CTAContent{}
		json.Unmarshal(props, &v)
		return v, true
	}
	return nil, false
}

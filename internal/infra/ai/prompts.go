package ai

import "fmt"

// Prompt templates for each AI tool. Every template is a plain formatted
// string forwarded as-is to the generative backend.

func AdCopyPrompt(productDescription, copyType, instruction string) string {
	return fmt.Sprintf(
		"You are an expert direct-response copywriter.\n"+
			"Product: %s\n"+
			"Write %s copy for this product.\n"+
			"Extra instructions: %s\n"+
			"Reply with the copy only, no preamble.",
		productDescription, copyType, instruction)
}

func SuggestCTAsPrompt(productDescription string, count int) string {
	return fmt.Sprintf(
		"Suggest %d short, high-converting call-to-action button labels for this product: %s\n"+
			`Reply with bare JSON: {"ctas": ["...", "..."]}`,
		count, productDescription)
}

func ProductReviewPrompt(productName, productDescription, tone string) string {
	return fmt.Sprintf(
		"Write a believable customer review for the product %q.\n"+
			"Product details: %s\n"+
			"Tone: %s\n"+
			"Reply with the review text only.",
		productName, productDescription, tone)
}

func ProductHookPrompt(productDescription, audience string) string {
	return fmt.Sprintf(
		"Write one scroll-stopping marketing hook (max 2 sentences) for this product: %s\n"+
			"Target audience: %s\n"+
			"Reply with the hook only.",
		productDescription, audience)
}

func EmailContentPrompt(productDescription, emailType, instruction string) string {
	return fmt.Sprintf(
		"Write a %s marketing email for this product: %s\n"+
			"Extra instructions: %s\n"+
			`Reply with bare JSON: {"subject": "...", "body": "..."}`,
		emailType, productDescription, instruction)
}

func ImagePrompt(description, style string) string {
	return fmt.Sprintf(
		"Produce a detailed image-generation prompt for: %s\nVisual style: %s\n"+
			"Reply with the prompt only.",
		description, style)
}

package aiapi

import (
	"net/http"

	"highlaunchpad/internal/infra/ai"

	"github.com/gin-gonic/gin"
)

var client *ai.Client

// Setup injects the generative client. Called once from main; tests
// inject a client pointed at a stub server.
func Setup(c *ai.Client) {
	client = c
}

func mustClient(c *gin.Context) bool {
	if client == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generative AI not configured"})
		return false
	}
	return true
}

// POST /api/ai/generate-ad-copy
func GenerateAdCopy(c *gin.Context) {
	var req struct {
		ProductDescription string `json:"productDescription" binding:"required"`
		CopyType           string `json:"copyType" binding:"required"`
		Instruction        string `json:"instruction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productDescription and copyType are required"})
		return
	}
	if !mustClient(c) {
		return
	}

	text, err := client.GenerateText(c.Request.Context(), ai.AdCopyPrompt(req.ProductDescription, req.CopyType, req.Instruction))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Copy generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"copy": text})
}

// POST /api/ai/suggest-ctas
func SuggestCTAs(c *gin.Context) {
	var req struct {
		ProductDescription string `json:"productDescription" binding:"required"`
		Count              int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productDescription is required"})
		return
	}
	if req.Count <= 0 {
		req.Count = 5
	}
	if !mustClient(c) {
		return
	}

	var out struct {
		CTAs []string `json:"ctas"`
	}
	if err := client.GenerateJSON(c.Request.Context(), ai.SuggestCTAsPrompt(req.ProductDescription, req.Count), &out); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "CTA suggestion failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ctas": out.CTAs})
}

// POST /api/ai/generate-product-review
func GenerateProductReview(c *gin.Context) {
	var req struct {
		ProductName        string `json:"productName" binding:"required"`
		ProductDescription string `json:"productDescription" binding:"required"`
		Tone               string `json:"tone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productName and productDescription are required"})
		return
	}
	if req.Tone == "" {
		req.Tone = "enthusiastic but credible"
	}
	if !mustClient(c) {
		return
	}

	text, err := client.GenerateText(c.Request.Context(), ai.ProductReviewPrompt(req.ProductName, req.ProductDescription, req.Tone))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": text})
}

// POST /api/ai/generate-product-hook
func GenerateProductHook(c *gin.Context) {
	var req struct {
		ProductDescription string `json:"productDescription" binding:"required"`
		Audience           string `json:"audience"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productDescription is required"})
		return
	}
	if !mustClient(c) {
		return
	}

	text, err := client.GenerateText(c.Request.Context(), ai.ProductHookPrompt(req.ProductDescription, req.Audience))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hook generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hook": text})
}

// POST /api/ai/generate-email-content
func GenerateEmailContent(c *gin.Context) {
	var req struct {
		ProductDescription string `json:"productDescription" binding:"required"`
		EmailType          string `json:"emailType" binding:"required"`
		Instruction        string `json:"instruction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productDescription and emailType are required"})
		return
	}
	if !mustClient(c) {
		return
	}

	var out struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := client.GenerateJSON(c.Request.Context(), ai.EmailContentPrompt(req.ProductDescription, req.EmailType, req.Instruction), &out); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subject": out.Subject, "body": out.Body})
}

// POST /api/ai/generate-image
//
// Produces the finished image-generation prompt; the client feeds it to
// the vendor's image endpoint directly.
func GenerateImage(c *gin.Context) {
	var req struct {
		Description string `json:"description" binding:"required"`
		Style       string `json:"style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}
	if req.Style == "" {
		req.Style = "clean, modern marketing photography"
	}
	if !mustClient(c) {
		return
	}

	text, err := client.GenerateText(c.Request.Context(), ai.ImagePrompt(req.Description, req.Style))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image prompt generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prompt": text})
}

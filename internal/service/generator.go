package service

import (
	"context"
	"fmt"

	"homematch/internal/utils"
)

const generatePromptTemplate = `Your goal is to generate realistic real estate listings that includes the following parameters neighborhood, price, bedroom count, bathroom count, house size, description of the house and neighborhood description.
One Example is: Neighborhood: Green Oaks
Price: $800,000
Bedrooms: 3
Bathrooms: 2
House Size: 2,000 sqft

Description: Welcome to this eco-friendly oasis nestled in the heart of Green Oaks. This charming 3-bedroom, 2-bathroom home boasts energy-efficient features such as solar panels and a well-insulated structure. Natural light floods the living spaces, highlighting the beautiful hardwood floors and eco-conscious finishes. The open-concept kitchen and dining area lead to a spacious backyard with a vegetable garden, perfect for the eco-conscious family. Embrace sustainable living without compromising on style in this Green Oaks gem.

Neighborhood Description: Green Oaks is a close-knit, environmentally-conscious community with access to organic grocery stores, community gardens, and bike paths. Take a stroll through the nearby Green Oaks Park or grab a cup of coffee at the cozy Green Bean Cafe. With easy access to public transportation and bike lanes, commuting is a breeze.

Number the listings ("1. Neighborhood: ...", "2. Neighborhood: ...").
Create %d listings.`

// Generator asks the chat model to fabricate synthetic listing text in the
// fixed template. Service failures propagate to the caller with no retry.
type Generator struct {
	client      ChatClient
	temperature float64
	logger      *utils.Logger
}

// NewGenerator creates a Generator using the given chat client.
func NewGenerator(client ChatClient, temperature float64, logger *utils.Logger) *Generator {
	return &Generator{client: client, temperature: temperature, logger: logger}
}

// Generate returns one raw text block containing count pseudo-listings.
func (g *Generator) Generate(ctx context.Context, count int) (string, error) {
	if count <= 0 {
		count = 10
	}
	g.logger.Info("[generator] requesting %d synthetic listings", count)

	prompt := fmt.Sprintf(generatePromptTemplate, count)
	text, err := g.client.Complete(ctx, prompt, g.temperature)
	if err != nil {
		return "", fmt.Errorf("listing generation failed: %w", err)
	}
	return text, nil
}

package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"opdrape-backend/ai"
	"opdrape-backend/database"
	"opdrape-backend/models"
)

// AIController is a thin data-gathering and formatting layer in front of the
// external text-generation service: it composes a store-context string,
// appends the conversation, and returns the service's reply verbatim.
type AIController struct {
	store     *database.Store
	generator ai.Generator
}

func NewAIController(store *database.Store, generator ai.Generator) *AIController {
	return &AIController{store: store, generator: generator}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []chatMessage `json:"conversationHistory"`
}

func (ac *AIController) Chat(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if len(message) < 1 || len(message) > 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must be between 1 and 2000 characters"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storeContext := ac.buildStoreContext(ctx, message, userID)
	prompt := composePrompt(storeContext, req.ConversationHistory, message)

	reply, err := ac.generator.Generate(ctx, prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (ac *AIController) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": []string{
		"What are your best sellers?",
		"Show me new arrivals",
		"What's on sale right now?",
		"Where is my order?",
		"What sizes do you carry?",
	}})
}

func (ac *AIController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := ac.generator.Generate(ctx, "ping"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// buildStoreContext gathers catalog snippets relevant to the message plus the
// user's recent orders.
func (ac *AIController) buildStoreContext(ctx context.Context, message string, userID primitive.ObjectID) string {
	var b strings.Builder
	b.WriteString("OPDRAPE E-COMMERCE STORE INFORMATION:\n\n")

	bestSellers := ac.findProducts(ctx, bson.M{"isActive": true, "metadata.isBestSeller": true}, 5)
	writeProductSection(&b, "BEST SELLING PRODUCTS:", bestSellers)

	newArrivals := ac.findProducts(ctx, bson.M{"isActive": true, "metadata.isNewArrival": true}, 5)
	writeProductSection(&b, "NEW ARRIVALS:", newArrivals)

	saleItems := ac.findProducts(ctx, bson.M{"isActive": true, "metadata.isSale": true}, 5)
	writeProductSection(&b, "ON SALE:", saleItems)

	if keywords := extractKeywords(message); len(keywords) > 0 {
		pattern := primitive.Regex{Pattern: strings.Join(keywords, "|"), Options: "i"}
		matches := ac.findProducts(ctx, bson.M{
			"isActive": true,
			"$or": []bson.M{
				{"name": pattern},
				{"description": pattern},
				{"category": pattern},
				{"subCategory": pattern},
				{"tags": bson.M{"$in": keywords}},
			},
		}, 8)
		writeProductSection(&b, "MATCHING PRODUCTS:", matches)
	}

	if !userID.IsZero() {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(3)
		cursor, err := ac.store.Orders.Find(ctx, bson.M{"user": userID}, opts)
		if err == nil {
			var orders []models.Order
			if err := cursor.All(ctx, &orders); err == nil && len(orders) > 0 {
				b.WriteString("CUSTOMER'S RECENT ORDERS:\n")
				for _, order := range orders {
					fmt.Fprintf(&b, "- Order %s: %s, $%.2f, placed %s\n",
						order.ID.Hex(), order.Status, order.TotalAmount,
						order.CreatedAt.Format("2006-01-02"))
				}
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (ac *AIController) findProducts(ctx context.Context, filter bson.M, limit int64) []models.Product {
	cursor, err := ac.store.Products.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil
	}
	return products
}

func writeProductSection(b *strings.Builder, header string, products []models.Product) {
	if len(products) == 0 {
		return
	}
	b.WriteString(header + "\n")
	for _, p := range products {
		price, err := p.EffectivePrice()
		if err != nil {
			continue
		}
		line := fmt.Sprintf("- %s: $%.2f - %s/%s", p.Name, price, p.Category, p.SubCategory)
		if p.TotalReviews > 0 {
			line += fmt.Sprintf(" (%.1f, %d reviews)", p.AverageRating, p.TotalReviews)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func extractKeywords(message string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(message)) {
		if len(word) > 2 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// composePrompt joins store context, trimmed conversation history and the
// new message into the single context string the generator consumes.
func composePrompt(storeContext string, history []chatMessage, message string) string {
	var b strings.Builder
	b.WriteString(storeContext)

	if len(history) > 0 {
		// Keep only the most recent exchanges.
		if len(history) > 10 {
			history = history[len(history)-10:]
		}
		b.WriteString("CONVERSATION HISTORY:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
		b.WriteString("\n")
	}

	b.WriteString("CUSTOMER MESSAGE:\n")
	b.WriteString(message)
	return b.String()
}

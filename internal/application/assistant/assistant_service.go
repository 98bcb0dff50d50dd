package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxHistory caps the conversation forwarded to the model
const maxHistory = 40

// ErrNotConfigured is returned when no LLM key is configured
var ErrNotConfigured = shared.NewDomainError("NOT_CONFIGURED", "assistant not configured")

// Message is one chat turn
type Message struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,max=8000"`
}

// ChatRequest is the conversation so far
type ChatRequest struct {
	Messages []Message `json:"messages" binding:"required,min=1,dive"`
}

// ChatResponse is the assistant reply
type ChatResponse struct {
	Response string       `json:"response"`
	Metrics  StoreMetrics `json:"metrics"`
}

// StoreMetrics is the live snapshot given to the model
type StoreMetrics struct {
	Orders        int64  `json:"orders"`
	Revenue       string `json:"revenue"`
	Products      int64  `json:"products"`
	LowStockItems int64  `json:"low_stock_items"`
}

// ChatCompleter sends a conversation to a chat completion model
type ChatCompleter interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// AssistantService answers store owners with a model grounded on their
// store metrics
type AssistantService struct {
	llm         ChatCompleter
	orderRepo   sales.OrderRepository
	productRepo catalog.ProductRepository
	variantRepo catalog.VariantRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewAssistantService creates a new AssistantService. llm is nil when no
// API key is configured.
func NewAssistantService(
	llm ChatCompleter,
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *AssistantService {
	return &AssistantService{
		llm:         llm,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Chat answers the last user message
func (s *AssistantService) Chat(ctx context.Context, tenantID uuid.UUID, req ChatRequest) (*ChatResponse, error) {
	if s.llm == nil {
		return nil, ErrNotConfigured
	}

	metrics, err := s.Metrics(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	name := "amigo"
	if owner, err := s.userRepo.FindByID(ctx, tenantID); err == nil && owner.Nickname != "" {
		name = owner.Nickname
	}

	history := req.Messages
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	conversation := make([]Message, 0, len(history)+1)
	conversation = append(conversation, Message{Role: "system", Content: SystemPrompt(name, metrics)})
	for _, m := range history {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		conversation = append(conversation, m)
	}

	reply, err := s.llm.Complete(ctx, conversation)
	if err != nil {
		s.logger.Warn("assistant completion failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, fmt.Errorf("assistant completion: %w", err)
	}
	return &ChatResponse{Response: strings.TrimSpace(reply), Metrics: metrics}, nil
}

// Metrics collects the live store snapshot
func (s *AssistantService) Metrics(ctx context.Context, tenantID uuid.UUID) (StoreMetrics, error) {
	stats, err := s.orderRepo.StatsForTenant(ctx, tenantID)
	if err != nil {
		return StoreMetrics{}, fmt.Errorf("order stats: %w", err)
	}
	products, err := s.productRepo.CountByTenant(ctx, tenantID)
	if err != nil {
		return StoreMetrics{}, fmt.Errorf("count products: %w", err)
	}
	lowStock, err := s.variantRepo.CountLowStock(ctx, tenantID, catalog.LowStockThreshold)
	if err != nil {
		return StoreMetrics{}, fmt.Errorf("count low stock: %w", err)
	}
	return StoreMetrics{
		Orders:        stats.Orders,
		Revenue:       stats.Revenue.StringFixed(2),
		Products:      products,
		LowStockItems: lowStock,
	}, nil
}

// SystemPrompt renders the assistant persona with the store snapshot
func SystemPrompt(userName string, m StoreMetrics) string {
	var b strings.Builder
	b.WriteString("Eres Bayt, el asistente de Bayup. Eres cercano, usas emojis con moderación y tuteas.\n")
	fmt.Fprintf(&b, "Estás hablando con %s.\n\n", userName)
	b.WriteString("Datos en vivo de la tienda:\n")
	fmt.Fprintf(&b, "- Pedidos totales: %d\n", m.Orders)
	fmt.Fprintf(&b, "- Ingresos totales: $%s\n", m.Revenue)
	fmt.Fprintf(&b, "- Productos publicados: %d\n", m.Products)
	fmt.Fprintf(&b, "- Variantes con stock bajo (<= %d): %d\n\n", catalog.LowStockThreshold, m.LowStockItems)
	b.WriteString("Responde en español, con cifras concretas cuando las tengas, y no inventes datos que no estén arriba.")
	return b.String()
}

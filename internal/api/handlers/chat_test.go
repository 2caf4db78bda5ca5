package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/crestline-labs/supportdesk/internal/chat"
	"github.com/crestline-labs/supportdesk/internal/domain"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) CustomerTurn(ctx context.Context, p domain.Principal, message string) (*chat.Result, error) {
	args := m.Called(ctx, p, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Result), args.Error(1)
}

func TestChatHandler_Chat_Success(t *testing.T) {
	mockSvc := new(MockChatService)
	handler := NewChatHandler(mockSvc)

	mockSvc.On("CustomerTurn", mock.Anything, mock.Anything, "What widgets do you sell?").Return(&chat.Result{
		Response: "We sell the SuperWidget line.",
	}, nil)

	body := `{"message":"What widgets do you sell?"}`
	req := requestWithPrincipal(http.MethodPost, "/chat", []byte(body), testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "We sell the SuperWidget line.", data["response"])
	assert.Equal(t, false, data["handoff"])
	assert.Equal(t, false, data["error"])
}

func TestChatHandler_Chat_InferenceTroubleStaysHTTP200(t *testing.T) {
	mockSvc := new(MockChatService)
	handler := NewChatHandler(mockSvc)

	mockSvc.On("CustomerTurn", mock.Anything, mock.Anything, "help").Return(&chat.Result{
		Response: "I'm having trouble connecting to the AI service right now.",
		Handoff:  true,
		Err:      true,
	}, nil)

	body := `{"message":"help"}`
	req := requestWithPrincipal(http.MethodPost, "/chat", []byte(body), testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["handoff"])
	assert.Equal(t, true, data["error"])
}

func TestChatHandler_Chat_WrongRole(t *testing.T) {
	mockSvc := new(MockChatService)
	handler := NewChatHandler(mockSvc)

	mockSvc.On("CustomerTurn", mock.Anything, mock.Anything, "hi").Return(nil, domain.ErrRoleNotAllowed)

	body := `{"message":"hi"}`
	req := requestWithPrincipal(http.MethodPost, "/chat", []byte(body), testPrincipal(domain.RoleAgent))
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChatHandler_Chat_Unauthorized(t *testing.T) {
	mockSvc := new(MockChatService)
	handler := NewChatHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "CustomerTurn", mock.Anything, mock.Anything, mock.Anything)
}

type MockAssistService struct {
	mock.Mock
}

func (m *MockAssistService) AgentAssist(ctx context.Context, p domain.Principal, query, conversationContext string) (string, error) {
	args := m.Called(ctx, p, query, conversationContext)
	return args.String(0), args.Error(1)
}

func (m *MockAssistService) TicketSummary(ctx context.Context, p domain.Principal, conversationHistory string) (string, error) {
	args := m.Called(ctx, p, conversationHistory)
	return args.String(0), args.Error(1)
}

func (m *MockAssistService) ResponseDraft(ctx context.Context, p domain.Principal, customerQuery, relevantInfo, tone string) (string, error) {
	args := m.Called(ctx, p, customerQuery, relevantInfo, tone)
	return args.String(0), args.Error(1)
}

func TestAssistHandler_AgentAssist_Success(t *testing.T) {
	mockSvc := new(MockAssistService)
	handler := NewAssistHandler(mockSvc)

	mockSvc.On("AgentAssist", mock.Anything, mock.Anything, "refund policy", "customer asked twice").
		Return("Point the customer at the 30-day return window.", nil)

	body := `{"query":"refund policy","conversation_context":"customer asked twice"}`
	req := requestWithPrincipal(http.MethodPost, "/assist", []byte(body), testPrincipal(domain.RoleAgent))
	w := httptest.NewRecorder()

	handler.AgentAssist(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Contains(t, data["response"], "30-day")
}

func TestAssistHandler_AgentAssist_MissingQuery(t *testing.T) {
	mockSvc := new(MockAssistService)
	handler := NewAssistHandler(mockSvc)

	body := `{"conversation_context":"ctx"}`
	req := requestWithPrincipal(http.MethodPost, "/assist", []byte(body), testPrincipal(domain.RoleAgent))
	w := httptest.NewRecorder()

	handler.AgentAssist(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "query is required")
}

func TestAssistHandler_AgentAssist_CustomerForbidden(t *testing.T) {
	mockSvc := new(MockAssistService)
	handler := NewAssistHandler(mockSvc)

	mockSvc.On("AgentAssist", mock.Anything, mock.Anything, "q", "").Return("", domain.ErrRoleNotAllowed)

	body := `{"query":"q"}`
	req := requestWithPrincipal(http.MethodPost, "/assist", []byte(body), testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.AgentAssist(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAssistHandler_TicketSummary_Success(t *testing.T) {
	mockSvc := new(MockAssistService)
	handler := NewAssistHandler(mockSvc)

	mockSvc.On("TicketSummary", mock.Anything, mock.Anything, "long conversation").
		Return("Customer wants a refund.", nil)

	body := `{"conversation_history":"long conversation"}`
	req := requestWithPrincipal(http.MethodPost, "/assist/summary", []byte(body), testPrincipal(domain.RoleAgent))
	w := httptest.NewRecorder()

	handler.TicketSummary(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "Customer wants a refund.", data["summary"])
}

func TestAssistHandler_ResponseDraft_Success(t *testing.T) {
	mockSvc := new(MockAssistService)
	handler := NewAssistHandler(mockSvc)

	mockSvc.On("ResponseDraft", mock.Anything, mock.Anything, "where is my order", "shipped Tuesday", "friendly").
		Return("Hi! Your order shipped Tuesday.", nil)

	body := `{"customer_query":"where is my order","relevant_info":"shipped Tuesday","tone":"friendly"}`
	req := requestWithPrincipal(http.MethodPost, "/assist/draft", []byte(body), testPrincipal(domain.RoleAgent))
	w := httptest.NewRecorder()

	handler.ResponseDraft(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Contains(t, data["draft"], "shipped Tuesday")
}

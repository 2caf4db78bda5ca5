//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crestline-labs/supportdesk/internal/api/handlers"
	"github.com/crestline-labs/supportdesk/internal/chat"
	"github.com/crestline-labs/supportdesk/internal/repository"
	"github.com/crestline-labs/supportdesk/internal/server"
	"github.com/crestline-labs/supportdesk/internal/service"
	"github.com/crestline-labs/supportdesk/internal/storage"
	"github.com/crestline-labs/supportdesk/internal/testutil"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T             *testing.T
	Ctx           context.Context
	PostgresC     *testutil.PostgresContainer
	RustFSC       *testutil.RustFSContainer
	Pool          *pgxpool.Pool
	ServerURL     string
	ServerCloser  func()
	S3Client      *storage.S3Client
	HTTPClient    *http.Client
	CompanyID     string
	CompanyName   string
	AdminToken    string
	AgentToken    string
	CustomerToken string
}

// SetupE2EEnv creates a full E2E test environment with containers and server
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	s3C := testutil.NewRustFSContainer(ctx, t)

	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        s3C.Endpoint(),
		Region:          "us-east-1",
		AccessKeyID:     "rustfsadmin",
		SecretAccessKey: "rustfsadmin",
		Bucket:          "test-logos",
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("failed to create S3 client: %v", err)
	}

	if err := s3Client.EnsureBucket(ctx); err != nil {
		t.Fatalf("failed to create bucket: %v", err)
	}

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, pool, s3Client, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		RustFSC:      s3C,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		S3Client:     s3Client,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.RustFSC != nil {
		e.RustFSC.Terminate(e.Ctx)
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// Bootstrap registers a company plus one user per role and logs them all in.
func (e *E2ETestEnv) Bootstrap() {
	e.CompanyName = "E2E Test Co"

	companyResp, err := e.Post("/auth/register/company", map[string]string{
		"name":     e.CompanyName,
		"email":    "company@e2e.test",
		"password": "company-secret",
	}, "")
	if err != nil {
		e.T.Fatalf("failed to register company: %v", err)
	}

	var company struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(companyResp.Data, &company); err != nil {
		e.T.Fatalf("failed to parse company response: %v", err)
	}
	e.CompanyID = company.ID

	users := []struct {
		handle string
		email  string
		role   string
		token  *string
	}{
		{"e2e-admin", "admin@e2e.test", "admin", &e.AdminToken},
		{"e2e-agent", "agent@e2e.test", "agent", &e.AgentToken},
		{"e2e-customer", "customer@e2e.test", "customer", &e.CustomerToken},
	}

	for _, u := range users {
		_, err := e.Post("/auth/register/user", map[string]string{
			"handle":       u.handle,
			"email":        u.email,
			"password":     "user-secret",
			"company_name": e.CompanyName,
			"role":         u.role,
		}, "")
		if err != nil {
			e.T.Fatalf("failed to register %s user: %v", u.role, err)
		}

		*u.token = e.Login(u.email, "user-secret")
	}
}

// Login authenticates a user and returns the bearer token.
func (e *E2ETestEnv) Login(email, password string) string {
	resp, err := e.Post("/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		e.T.Fatalf("failed to log in %s: %v", email, err)
	}

	var login struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Data, &login); err != nil {
		e.T.Fatalf("failed to parse login response: %v", err)
	}
	return login.AccessToken
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path, authToken string) (*APIResponse, error) {
	return e.doRequest("GET", path, nil, authToken)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}, authToken string) (*APIResponse, error) {
	return e.doRequest("POST", path, body, authToken)
}

// Put performs a PUT request
func (e *E2ETestEnv) Put(path string, body interface{}, authToken string) (*APIResponse, error) {
	return e.doRequest("PUT", path, body, authToken)
}

// Delete performs a DELETE request
func (e *E2ETestEnv) Delete(path, authToken string) (*APIResponse, error) {
	return e.doRequest("DELETE", path, nil, authToken)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}, authToken string) (*APIResponse, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent {
		return &APIResponse{}, nil
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiResp.Error)
	}

	return &apiResp, nil
}

// UploadFile uploads a file to the presigned URL
func (e *E2ETestEnv) UploadFile(uploadURL string, content []byte, contentType string) error {
	req, err := http.NewRequest("PUT", uploadURL, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, body)
	}

	return nil
}

// DownloadFile downloads a file from the presigned URL
func (e *E2ETestEnv) DownloadFile(downloadURL string) ([]byte, error) {
	resp, err := e.HTTPClient.Get(downloadURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// SHA256Sum calculates SHA256 hash of data
func SHA256Sum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// startServer starts the HTTP server with all handlers
func startServer(t *testing.T, pool *pgxpool.Pool, s3Client *storage.S3Client, port int) (string, func()) {
	companyRepo := repository.NewCompanyRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	faqRepo := repository.NewFAQRepository(pool)
	policyRepo := repository.NewPolicyRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	authSvc := service.NewAuthService(companyRepo, userRepo, "e2e-test-secret", time.Hour)
	catalogSvc := service.NewCatalogService(productRepo, serviceRepo, faqRepo, policyRepo, nil)
	cartSvc := service.NewCartService(cartRepo, productRepo, serviceRepo, txRunner)
	logoSvc := service.NewLogoService(companyRepo, &s3StorageAdapter{client: s3Client})

	orchestrator := chat.NewOrchestrator(
		chat.NewMatcher(chat.NewStore()),
		chat.NewHistory(),
		&scriptedCompleter{reply: "Here is what I found in our knowledge base."},
	)

	cfg := server.RouterConfig{
		TokenVerifier:  authSvc,
		AuthHandler:    handlers.NewAuthHandler(authSvc),
		CatalogHandler: handlers.NewCatalogHandler(catalogSvc),
		CartHandler:    handlers.NewCartHandler(cartSvc),
		ChatHandler:    handlers.NewChatHandler(orchestrator),
		AssistHandler:  handlers.NewAssistHandler(orchestrator),
		SearchHandler:  handlers.NewSearchHandler(&emptySearchService{}),
		LogoHandler:    handlers.NewLogoHandler(logoSvc),
	}

	router := server.NewRouter(cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// s3StorageAdapter adapts S3Client to StorageClientInterface
type s3StorageAdapter struct {
	client *storage.S3Client
}

func (a *s3StorageAdapter) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	return a.client.GenerateUploadURL(ctx, key, contentType)
}

func (a *s3StorageAdapter) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	return a.client.GenerateDownloadURL(ctx, key)
}

func (a *s3StorageAdapter) DeleteObject(ctx context.Context, key string) error {
	return a.client.DeleteObject(ctx, key)
}

func (a *s3StorageAdapter) HeadObject(ctx context.Context, key string) (*service.ObjectMetadata, error) {
	meta, err := a.client.HeadObject(ctx, key)
	if err != nil {
		return nil, err
	}
	return &service.ObjectMetadata{
		ContentLength: meta.ContentLength,
		ContentType:   meta.ContentType,
		ETag:          meta.ETag,
	}, nil
}

// scriptedCompleter returns a fixed reply so chat tests run without an
// inference provider.
type scriptedCompleter struct {
	reply string
}

func (c *scriptedCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	return c.reply, nil
}

// emptySearchService stands in for semantic search, which needs an
// embeddings API that is not available in E2E runs.
type emptySearchService struct{}

func (s *emptySearchService) Search(ctx context.Context, companyID, query string, limit int) ([]*service.SearchHit, error) {
	return []*service.SearchHit{}, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rollson/internal/services/mcp/domain"
)

// connect serves a new server on an in-memory transport and returns a client session.
func connect(t *testing.T, locale string) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- New(locale).serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

func decodeStructured(t *testing.T, result *mcp.CallToolResult, target any) {
	t.Helper()
	payload, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
}

// TestServerListsRollTools ensures every roll tool is registered.
func TestServerListsRollTools(t *testing.T) {
	session := connect(t, "en-US")

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	for _, want := range []string{"roll_dice", "roll_2d6_plus", "roll_on_success", "compare_rolls_on_quality"} {
		if !slices.Contains(names, want) {
			t.Errorf("expected tool %q in %v", want, names)
		}
	}
}

// TestServerRollOnSuccess exercises a roll on success end to end.
func TestServerRollOnSuccess(t *testing.T) {
	session := connect(t, "en-US")

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "roll_on_success",
		Arguments: map[string]any{
			"preconditions_sum": 2,
			"rolled":            []int{3, 4},
			"tiers": []map[string]any{
				{"difficulty": 12, "success_code": "unmoved", "failure_code": "shaken"},
				{"difficulty": 8, "success_code": "resisted", "failure_code": "shaken"},
			},
		},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result.Content)
	}

	var output domain.RollOnSuccessResult
	decodeStructured(t, result, &output)
	if output.Quality.Value != 9 || output.ResultCode != "resisted" || output.WinningDifficulty != 8 {
		t.Fatalf("unexpected output %+v", output)
	}
}

// TestServerReportsLocalizedToolErrors ensures domain errors reach the client as tool errors.
func TestServerReportsLocalizedToolErrors(t *testing.T) {
	session := connect(t, "cs-CZ")

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "roll_on_success",
		Arguments: map[string]any{
			"rolled": []int{3, 4},
			"tiers":  []map[string]any{},
		},
	})
	if err != nil {
		if !strings.Contains(err.Error(), "Je potřeba alespoň jeden hod na úspěch.") {
			t.Fatalf("unexpected error %v", err)
		}
		return
	}
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	var text string
	for _, content := range result.Content {
		if textContent, ok := content.(*mcp.TextContent); ok {
			text += textContent.Text
		}
	}
	if !strings.Contains(text, "Je potřeba alespoň jeden hod na úspěch.") {
		t.Fatalf("expected czech message, got %q", text)
	}
}

// TestServeStopsOnContext ensures serving exits cleanly when the context is cancelled.
func TestServeStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- New("en-US").serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

// TestServeWithoutServer ensures a zero server reports a configuration error.
func TestServeWithoutServer(t *testing.T) {
	var server *Server
	if err := server.serveWithTransport(context.Background(), nil); err == nil {
		t.Fatal("expected error for unconfigured server")
	}
}

// TestRunUnsupportedTransport ensures Run rejects unknown transport kinds.
func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestHTTPTransportHealth(t *testing.T) {
	transport := NewHTTPTransportWithServer("", New("en-US").mcpServer)
	if transport.addr != defaultHTTPAddr {
		t.Fatalf("expected default addr, got %q", transport.addr)
	}

	req := httptest.NewRequest(http.MethodGet, "/mcp/health", nil)
	req.Host = "localhost:8081"
	rec := httptest.NewRecorder()
	transport.handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/mcp/health", nil)
	req.Host = "127.0.0.1"
	rec = httptest.NewRecorder()
	transport.handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHTTPTransportHostAllowList(t *testing.T) {
	t.Setenv("ROLLSON_MCP_ALLOWED_HOSTS", "rolls.example.com, Dice.Example.com")
	transport := NewHTTPTransportWithServer("localhost:0", New("en-US").mcpServer)

	tests := []struct {
		host string
		want int
	}{
		{"localhost", http.StatusOK},
		{"[::1]:8081", http.StatusOK},
		{"rolls.example.com:443", http.StatusOK},
		{"dice.example.com", http.StatusOK},
		{"evil.example.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/mcp/health", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			transport.handler().ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestHTTPTransportStartStopsOnContext(t *testing.T) {
	transport := NewHTTPTransportWithServer("127.0.0.1:0", New("en-US").mcpServer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- transport.Start(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("HTTP transport did not stop after cancel")
	}
}

func TestHTTPTransportStartListenError(t *testing.T) {
	original := listenTCP
	listenTCP = func(string, string) (net.Listener, error) {
		return nil, errors.New("address in use")
	}
	t.Cleanup(func() { listenTCP = original })

	transport := NewHTTPTransportWithServer("127.0.0.1:1", New("en-US").mcpServer)
	if err := transport.Start(context.Background()); err == nil || !strings.Contains(err.Error(), "address in use") {
		t.Fatalf("expected listen error, got %v", err)
	}
}

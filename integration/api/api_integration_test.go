//go:build integration

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Flarenzy/preghierine/internal/app"
	"github.com/Flarenzy/preghierine/internal/policy"
)

const httpReady = 10 * time.Second

type sendResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	MessageSent   string `json:"messageSent"`
	TargetIP      string `json:"targetIp"`
	TargetPort    int    `json:"targetPort"`
	SubnetCIDR    string `json:"subnetCidr"`
	CIDREffective int    `json:"cidrEffective"`
	Error         string `json:"error"`
}

func startServer(t *testing.T) string {
	t.Helper()

	phrasesFile := filepath.Join(t.TempDir(), "preghierine.txt")
	if err := os.WriteFile(phrasesFile, []byte("Pace e bene\n\nSia lodato\n"), 0o600); err != nil {
		t.Fatalf("write phrases: %v", err)
	}

	blocked, err := policy.ParsePrefixes(policy.DefaultBlockedSubnets)
	if err != nil {
		t.Fatalf("parse blocked: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Serve(ctx, app.Config{
			PhrasesFile:    phrasesFile,
			MinPrefixBits:  18,
			BlockedSubnets: blocked,
			SendTimeout:    2 * time.Second,
			ReadTimeout:    3 * time.Second,
			WriteTimeout:   3 * time.Second,
			LogLevel:       "error",
			LogFormat:      "text",
		}, listener)
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("server exited with error: %v", err)
			}
		case <-time.After(10 * time.Second):
			t.Error("server did not stop")
		}
	})

	baseURL := "http://" + listener.Addr().String()
	waitReady(t, baseURL)
	return baseURL
}

func waitReady(t *testing.T, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(httpReady)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/readyz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server at %s not ready after %s", baseURL, httpReady)
}

func post(t *testing.T, baseURL, body string) (int, sendResponse) {
	t.Helper()

	resp, err := http.Post(baseURL+"/api/send-random", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out sendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return resp.StatusCode, out
}

func TestPrivateSubnetIsBlocked(t *testing.T) {
	baseURL := startServer(t)

	code, out := post(t, baseURL, `{"subnet":"192.168.1.0","cidr":24,"minPort":1024,"maxPort":1024}`)
	if code != http.StatusOK || out.Status != "blocked" || out.SubnetCIDR != "192.168.1.0/24" {
		t.Fatalf("unexpected response %d %+v", code, out)
	}
	if !netip.MustParsePrefix("192.168.1.0/24").Contains(netip.MustParseAddr(out.TargetIP)) {
		t.Fatalf("target %s outside subnet", out.TargetIP)
	}
}

func TestWideSubnetIsClamped(t *testing.T) {
	baseURL := startServer(t)

	for range 20 {
		code, out := post(t, baseURL, `{"subnet":"10.0.0.0","cidr":8}`)
		if code != http.StatusOK || out.Status != "blocked" || out.CIDREffective != 18 {
			t.Fatalf("unexpected response %d %+v", code, out)
		}
		if !netip.MustParsePrefix("10.0.0.0/18").Contains(netip.MustParseAddr(out.TargetIP)) {
			t.Fatalf("target %s outside clamped /18", out.TargetIP)
		}
	}
}

func TestExplicitlyBlockedSubnet(t *testing.T) {
	baseURL := startServer(t)

	code, out := post(t, baseURL, `{"subnet":"103.188.230.0","cidr":24}`)
	if code != http.StatusOK || out.Status != "blocked" {
		t.Fatalf("unexpected response %d %+v", code, out)
	}
}

func TestMissingSubnetIsRejected(t *testing.T) {
	baseURL := startServer(t)

	code, out := post(t, baseURL, `{"cidr":24}`)
	if code != http.StatusBadRequest || !strings.Contains(out.Error, "subnet") {
		t.Fatalf("unexpected response %d %+v", code, out)
	}
}

func TestBlockedTargetShortCircuitsPortValidation(t *testing.T) {
	baseURL := startServer(t)

	for _, body := range []string{
		`{"subnet":"10.0.0.1","cidr":32,"minPort":70000,"maxPort":1}`,
		`{"subnet":"192.168.1.0","cidr":24,"minPort":"abc"}`,
	} {
		code, out := post(t, baseURL, body)
		if code != http.StatusOK || out.Status != "blocked" {
			t.Fatalf("%s: unexpected response %d %+v", body, code, out)
		}
	}
}

func TestInvalidPortsOnAllowedTarget(t *testing.T) {
	baseURL := startServer(t)

	code, out := post(t, baseURL, `{"subnet":"8.8.8.8","cidr":32,"minPort":70000,"maxPort":1}`)
	if code != http.StatusBadRequest || !strings.Contains(out.Error, "port") {
		t.Fatalf("unexpected response %d %+v", code, out)
	}
}

// Sends a real datagram to a public host, so it only runs when asked to.
func TestGlobalSubnetSends(t *testing.T) {
	if os.Getenv("INTEGRATION_ALLOW_SEND") == "" {
		t.Skip("set INTEGRATION_ALLOW_SEND=1 to send a real datagram")
	}
	baseURL := startServer(t)

	code, out := post(t, baseURL, `{"subnet":"8.8.8.0","cidr":24,"minPort":9,"maxPort":9}`)
	if code != http.StatusOK || out.Status != "ok" || out.TargetPort != 9 {
		t.Fatalf("unexpected response %d %+v", code, out)
	}
	if out.MessageSent != "Pace e bene" && out.MessageSent != "Sia lodato" {
		t.Fatalf("unexpected phrase %q", out.MessageSent)
	}
	fmt.Printf("sent %q to %s:%d\n", out.MessageSent, out.TargetIP, out.TargetPort)
}

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	expected := []string{"balances", "settle", "metrics", "recurring", "migrate"}
	for _, name := range expected {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected %s command to be registered", name)
		}
	}
}

func TestBalancesCmdPrintsTransfers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/groups/group-1/balances" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"transfers": []map[string]string{
				{"from_user_id": "bob", "to_user_id": "alice", "amount": "25.00"},
			},
		})
	}))
	defer srv.Close()

	root := newRootCmd()
	root.SetArgs([]string{"balances", "group-1", "--url", srv.URL})

	out := captureOutput(t, func() {
		if err := root.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if !bytes.Contains([]byte(out), []byte(`"from_user_id": "bob"`)) {
		t.Fatalf("expected transfer in output, got:\n%s", out)
	}
}

func TestSettleCmdReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found"}`))
	}))
	defer srv.Close()

	root := newRootCmd()
	root.SetArgs([]string{"settle", "missing", "--url", srv.URL})
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

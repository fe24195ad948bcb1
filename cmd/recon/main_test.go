package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDryRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "serper-key", r.Header.Get("X-API-KEY"))
		w.Write([]byte(`{"organic":[{"title":"Acme sued","link":"https://news.example/acme","snippet":"..."}]}`))
	}))
	defer srv.Close()

	t.Setenv("SERPER_API_KEY", "serper-key")
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("RECON_RECIPIENT_EMAIL", "ops@example.com")
	t.Setenv("RECON_SEARCH_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"run", "--dry-run", "--target", "Acme LLC"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "To: ops@example.com")
	assert.Contains(t, out.String(), "--- Acme LLC ---")
	assert.Contains(t, out.String(), "Title: Acme sued")
	assert.Contains(t, errOut.String(), "Report Sent")
}

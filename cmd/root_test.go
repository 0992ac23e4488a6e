package cmd

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf_toolkit/config"
	"pdf_toolkit/internal/logging"
	"pdf_toolkit/internal/testutil"
	"pdf_toolkit/pdf"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootRunsSession(t *testing.T) {
	out, err := execute(t, "4\n")
	require.NoError(t, err)
	assert.Contains(t, out, "PDF toolkit")
	assert.Contains(t, out, "Exiting")
}

func TestRootUsesConfiguredSynonyms(t *testing.T) {
	dir := t.TempDir()
	in := testutil.WritePDF(t, dir, "doc.pdf", 4, 100)
	cfgPath := filepath.Join(dir, "pdf_toolkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("parity:\n  even: [gerade]\n"), 0644))

	script := strings.Join([]string{"2", in, "gerade", "", "y", "", "4"}, "\n") + "\n"
	out, err := execute(t, script, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Pages to delete (2): [2, 4]")

	doc, err := pdf.OpenDocument(filepath.Join(dir, "doc_edited.pdf"))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount)
}

func TestRootRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = execute(t, "", "unexpected")
	assert.Error(t, err)
}

func TestRunServerShutsDown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := config.Default()
	cfg.Port = strconv.Itoa(port)
	cfg.TempDir = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, cfg, logging.Discard()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + cfg.Port + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(GracefulShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}

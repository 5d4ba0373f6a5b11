package dataprocessing

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/require"

	"campaignclean/pkg/contracts/domain"
)

// fragmentCSV renders an indexed fragment with the full campaign schema
func fragmentCSV(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("," + strings.Join(domain.CampaignSchema(), ",") + "\n")
	for i, row := range rows {
		b.WriteString(strings.Join(append([]string{strconv.Itoa(i)}, row...), ",") + "\n")
	}
	return b.String()
}

// campaignRow builds a 16-cell row in schema order
func campaignRow(clientID, job, education, month, day string) []string {
	return []string{
		clientID, "56", job, "married", education, "no", "yes",
		month, day, "261", "1", "0", "nonexistent", "93.994", "4.857", "no",
	}
}

func writePlain(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeZip(t *testing.T, dir, name string, members map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for member, content := range members {
		w, err := zw.Create(member)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return writePlain(t, dir, name, buf.String())
}

func writeGzip(t *testing.T, dir, name, content string) string {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return writePlain(t, dir, name, buf.String())
}

func writeSnappy(t *testing.T, dir, name, content string) string {
	t.Helper()
	var buf bytes.Buffer
	sw := snappy.NewBufferedWriter(&buf)
	_, err := sw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, sw.Close())
	return writePlain(t, dir, name, buf.String())
}

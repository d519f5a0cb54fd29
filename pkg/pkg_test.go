package pkg

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWriteResponseBytes(t *testing.T) {
	w := httptest.NewRecorder()

	testJson := `{"key":"val"}`
	WriteResponseBytes(w, ContentType.JSON, []byte(testJson), http.StatusAccepted)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, ContentType.JSON, w.Header().Get("Content-Type"))
	assert.Equal(t, testJson, w.Body.String())
}

func TestWriteTextResponseOK(t *testing.T) {
	w := httptest.NewRecorder()
	WriteTextResponseOK(w, "alive")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentType.Text, w.Header().Get("Content-Type"))
	assert.Equal(t, "alive", w.Body.String())
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, map[string]float64{"City Run (miles)": 3.1}, http.StatusOK)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"City Run (miles)": 3.1}`, w.Body.String())

	w = httptest.NewRecorder()
	WriteJSON(w, map[string]any{"bad": make(chan int)}, http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, sb2)
	require.Len(t, cw.Writers, 2)

	n, err := cw.Write([]byte("a message"))
	require.NoError(t, err)
	assert.Equal(t, len("a message"), n)

	assert.Equal(t, "already-herea message", sb1.String())
	assert.Equal(t, "a message", sb2.String())
}

func TestCombinedWriter_Write_WithError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{}, sb, &faultyWriter{})

	n, err := cw.Write([]byte("a message"))
	assert.EqualError(t, err, "disk full; disk full")
	// still written to the string builder
	assert.Equal(t, len("a message"), n)
	assert.Equal(t, "a message", sb.String())
}

type faultyWriter struct{}

func (fw *faultyWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("disk full")
}

func TestBytesToString(t *testing.T) {
	assert.Equal(t, "test", BytesToString([]byte("test")))
}

func TestPathExists(t *testing.T) {
	exists, err := PathExists("/invalid/path/some-dir", true)
	assert.NoError(t, err)
	assert.False(t, exists)

	tempDir := t.TempDir()
	exists, err = PathExists(tempDir, true)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = PathExists(tempDir, false)
	assert.Error(t, err)
	assert.False(t, exists)

	file := filepath.Join(tempDir, "service.log")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	exists, err = PathExists(file, false)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate(" 2024-06-12 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local), date)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrEmptyDate)

	for _, invalid := range []string{"2024-6-12", "12.06.2024", "2024-02-30", "today"} {
		_, err = ParseDate(invalid)
		assert.Error(t, err, invalid)
	}
}

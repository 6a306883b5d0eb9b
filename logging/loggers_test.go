package logging

import (
	"io/ioutil"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarn(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir, "test", "warn", 1, false))
	assert.Equal(t, logrus.WarnLevel, clog.Level)

	CPrint(WARN, "digest mismatch",
		LogFormat{
			"want": "ba7816bf",
			"got":  "e3b0c442",
		})
	CPrint(ERROR, "chain broken", LogFormat{"index": 3})
	CPrint(ERROR, "chain broken", nil)

	//only in file
	VPrint(ERROR, "chain broken", LogFormat{"index": 3})
	VPrint(WARN, "digest mismatch", nil)
}

func TestDebugFileOnly(t *testing.T) {
	require.NoError(t, Init(t.TempDir(), "test", "debug", 1, true))
	assert.True(t, clog == vlog)
	assert.Equal(t, logrus.DebugLevel, vlog.Level)

	CPrint(TRACE, "schedule expanded", LogFormat{"block": 0})
	CPrint(DEBUG, "block compressed", LogFormat{"block": 0})
	VPrint(TRACE, "schedule expanded", nil)
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir, "hashcore", "info", 7, true))
	VPrint(INFO, "block added", LogFormat{"index": 7})

	files, err := filepath.Glob(filepath.Join(dir, "hashcore-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := ioutil.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"block added"`)
	assert.Contains(t, string(data), `"index":7`)
}

func TestInitRejectsEmptyPath(t *testing.T) {
	assert.Error(t, Init("", "test", "info", 0, false))
}

func TestLevels(t *testing.T) {
	for _, lvl := range []string{PanicLevel, FatalLevel, ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel} {
		assert.True(t, IsValidLevel(lvl), lvl)
	}
	assert.False(t, IsValidLevel("verbose"))
	assert.Equal(t, logrus.InfoLevel, convertLevel("verbose"))
	assert.Equal(t, logrus.TraceLevel, convertLevel(TraceLevel))
}

func TestMergeLogFormats(t *testing.T) {
	f := mergeLogFormats(LogFormat{"a": 1, "b": 2}, nil, LogFormat{"b": 3})
	assert.Equal(t, 1, f["a"])
	assert.Equal(t, 3, f["b"])
	assert.Equal(t, GetGID(), f["tid"])
}

func TestGid(t *testing.T) {
	require.NoError(t, Init(t.TempDir(), "test", "info", 1, false))
	var index int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			CPrint(INFO, "hashing message",
				LogFormat{
					"index": atomic.AddInt32(&index, 1),
				})
		}()
	}
	wg.Wait()
}

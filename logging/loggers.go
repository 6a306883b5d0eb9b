package logging

import (
	"bytes"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// const
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
	TraceLevel = "trace"
)
const (
	//PANIC log level
	PANIC uint32 = iota
	//FATAL has list msg
	FATAL
	//ERROR has list msg
	ERROR
	//WARN only log
	WARN
	//INFO only log
	INFO
	//DEBUG only log
	DEBUG
	//TRACE only log
	TRACE
)
const (
	//MsgFormatSingle use info
	MsgFormatSingle uint32 = iota
	//MsgFormatMulti use show all func call relation
	MsgFormatMulti
)

const (
	defaultLogDir      = "/tmp"
	defaultLogFilename = "tmp-hashcore"
)

// LogFormat is to log format
type LogFormat = map[string]interface{}

type emptyWriter struct{}

func (ew emptyWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

type Logger struct {
	*logrus.Logger
	//CallRelation to show stack list
	CallRelation uint32
}

func NewLogger() *Logger {
	return &Logger{
		Logger: logrus.New(),
	}
}

// SetCallList to set CallList
func (logger *Logger) SetCallRelation(button uint32) {
	logger.CallRelation = button
}

var (
	initMu sync.Mutex
	// clog prints to stdout and file, vlog to file only.
	clog *Logger
	vlog *Logger
)

var levels = map[string]logrus.Level{
	PanicLevel: logrus.PanicLevel,
	FatalLevel: logrus.FatalLevel,
	ErrorLevel: logrus.ErrorLevel,
	WarnLevel:  logrus.WarnLevel,
	InfoLevel:  logrus.InfoLevel,
	DebugLevel: logrus.DebugLevel,
	TraceLevel: logrus.TraceLevel,
}

// IsValidLevel reports whether level names a known log level.
func IsValidLevel(level string) bool {
	_, ok := levels[level]
	return ok
}

func convertLevel(level string) logrus.Level {
	if lvl, ok := levels[level]; ok {
		return lvl
	}
	return logrus.InfoLevel
}

func newLogger(level string, hook logrus.Hook) *Logger {
	l := NewLogger()
	LoadFunctionHooker(l)
	if hook != nil {
		l.Hooks.Add(hook)
	}
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.Level = convertLevel(level)
	return l
}

// Init loggers. Log files are written to path/filename-<date>.log and
// rotated daily and kept for maxAgeDays.
func Init(path, filename string, level string, maxAgeDays uint32, disableCPrint bool) error {
	fileHooker, err := NewFileRotateHooker(path, filename, maxAgeDays, nil)
	if err != nil {
		return err
	}

	initMu.Lock()
	vlog = newLogger(level, fileHooker)
	vlog.Out = &emptyWriter{}
	if !disableCPrint {
		clog = newLogger(level, fileHooker)
		clog.Out = os.Stdout
	} else {
		clog = vlog
	}
	initMu.Unlock()

	VPrint(INFO, "Logger Configuration.", LogFormat{
		"path":  path,
		"level": level,
	})
	return nil
}

// lazyInit falls back to a stderr-only logger when no log folder can be
// created in the default location.
func lazyInit() {
	initMu.Lock()
	ready := clog != nil && vlog != nil
	initMu.Unlock()
	if ready {
		return
	}
	if err := Init(defaultLogDir, defaultLogFilename, InfoLevel, 0, false); err != nil {
		initMu.Lock()
		clog = newLogger(InfoLevel, nil)
		clog.Out = os.Stderr
		vlog = clog
		initMu.Unlock()
	}
}

// GetGID return gid
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// CPrint into stdout + log
func CPrint(level uint32, msg string, formats ...LogFormat) {
	lazyInit()
	output(clog, level, msg, formats...)
}

// VPrint into log
func VPrint(level uint32, msg string, formats ...LogFormat) {
	lazyInit()
	output(vlog, level, msg, formats...)
}

func output(l *Logger, level uint32, msg string, formats ...LogFormat) {
	entry := l.WithFields(mergeLogFormats(formats...))
	switch level {
	case WARN, INFO, DEBUG, TRACE:
		l.SetCallRelation(MsgFormatSingle)
	default:
		l.SetCallRelation(MsgFormatMulti)
	}
	switch level {
	case PANIC:
		entry.Panic(msg)
	case FATAL:
		entry.Fatal(msg)
	case ERROR:
		entry.Error(msg)
	case WARN:
		entry.Warn(msg)
	case INFO:
		entry.Info(msg)
	case DEBUG:
		entry.Debug(msg)
	case TRACE:
		entry.Trace(msg)
	default:
		entry.Error(msg)
	}
}

// mergeLogFormats merges LogFormats.
// Same key would be covered by later-presented values.
func mergeLogFormats(formats ...LogFormat) LogFormat {
	format := LogFormat{}
	for _, data := range formats {
		if data == nil {
			continue
		}
		for k, v := range data {
			format[k] = v
		}
	}
	format["tid"] = GetGID()
	return format
}

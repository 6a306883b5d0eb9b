package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// callerSkip is the stack depth from fire back to the CPrint/VPrint caller.
const callerSkip = 8

type functionHooker struct {
	innerLogger *Logger
}

func caller(skip int) (file, fn string, line int, ok bool) {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "", "", 0, false
	}
	f := runtime.FuncForPC(pc)
	fn = f.Name()
	if index := strings.LastIndex(fn, "/"); index >= 0 {
		fn = fn[index+1:]
	}
	file, line = f.FileLine(pc)
	return filepath.Base(file), fn, line, true
}

func (h *functionHooker) fire(entry *logrus.Entry) {
	file, fn, line, ok := caller(callerSkip + 1)
	if !ok {
		return
	}
	entry.Data["func"] = fn
	entry.Data["line"] = line
	entry.Data["file"] = file
}

func (h *functionHooker) fires(entry *logrus.Entry) {
	for i := callerSkip; i < callerSkip+3; i++ {
		file, fn, line, ok := caller(i + 1)
		if !ok {
			break
		}
		entry.Data["f"+strconv.Itoa(i)] = fmt.Sprintf("{%s,%s,%d}", file, fn, line)
	}
}

func (h *functionHooker) Fire(entry *logrus.Entry) error {
	switch h.innerLogger.CallRelation {
	case MsgFormatMulti:
		h.fires(entry)
	case MsgFormatSingle:
		h.fire(entry)
	}
	return nil
}

func (h *functionHooker) Levels() []logrus.Level {
	return logrus.AllLevels
}

// LoadFunctionHooker loads a function hooker to the logger
func LoadFunctionHooker(logger *Logger) {
	logger.Hooks.Add(&functionHooker{innerLogger: logger})
}

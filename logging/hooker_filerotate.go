package logging

import (
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

const rotationTime = 24 * time.Hour

// NewFileRotateHooker writes every level to path/filename-<yyyymmdd>.log,
// one file per day, with path/filename.log linking to the newest. Files
// older than maxAgeDays are removed; 0 keeps the rotatelogs default.
// A nil formatter writes JSON lines.
func NewFileRotateHooker(path, filename string, maxAgeDays uint32, formatter logrus.Formatter) (logrus.Hook, error) {
	if path == "" {
		return nil, errors.New("empty logger folder")
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve logger folder")
	}
	if err = os.MkdirAll(path, 0700); err != nil {
		return nil, errors.Wrapf(err, "create logger folder %s", path)
	}

	opts := []rotatelogs.Option{
		rotatelogs.WithLinkName(filepath.Join(path, filename+".log")),
		rotatelogs.WithRotationTime(rotationTime),
	}
	if maxAgeDays > 0 {
		opts = append(opts, rotatelogs.WithMaxAge(time.Duration(maxAgeDays)*24*time.Hour))
	}
	writer, err := rotatelogs.New(filepath.Join(path, filename+"-%Y%m%d.log"), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create rotate logs")
	}

	if formatter == nil {
		formatter = &logrus.JSONFormatter{}
	}
	writers := make(lfshook.WriterMap, len(logrus.AllLevels))
	for _, lvl := range logrus.AllLevels {
		writers[lvl] = writer
	}
	return lfshook.NewHook(writers, formatter), nil
}

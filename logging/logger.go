package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It is usable before InitLogger runs.
var Logger = logrus.New()
var once sync.Once

const SystemName = "ems-backend"

// CustomFormatter writes one flat line per entry in the
// "Date, Time, Event Source, Event Type, Event ID, Message" layout.
type CustomFormatter struct {
	SystemName string
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf(", %s=%v", k, entry.Data[k]))
		}
	}

	if entry.HasCaller() {
		b.WriteString(fmt.Sprintf(", Location: %s:%d in %s", filepath.Base(entry.Caller.File), entry.Caller.Line, entry.Caller.Function))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger configures the global logger. An empty logFile keeps output on stdout.
func InitLogger(logFile, level string) {
	once.Do(func() {
		var out io.Writer = os.Stdout
		if logFile != "" {
			if err := os.MkdirAll(filepath.Dir(logFile), 0o700); err != nil {
				logrus.Fatalf("Event ID: LOG_DIR_CREATE_FAILED, Description: Failed to create log directory: %v", err)
			}
			out = &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}

		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}

		Logger.SetOutput(out)
		Logger.SetFormatter(&CustomFormatter{SystemName: SystemName})
		Logger.SetLevel(lvl)
		Logger.SetReportCaller(true)

		Logger.Infof("Event ID: LOGGER_INITIALIZED, Description: Logger initialized for %s at level %s", SystemName, lvl)
	})
}

// Package logx writes single-line JSON events through a standard *log.Logger.
package logx

import (
	"encoding/json"
	"log"
	"time"
)

type Fields map[string]any

func Info(logger *log.Logger, msg string, fields Fields) {
	write(logger, "info", msg, fields)
}

func Warn(logger *log.Logger, msg string, fields Fields) {
	write(logger, "warn", msg, fields)
}

func Error(logger *log.Logger, msg string, fields Fields) {
	write(logger, "error", msg, fields)
}

func write(logger *log.Logger, level, msg string, fields Fields) {
	if logger == nil {
		return
	}
	payload := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		payload[k] = v
	}
	payload["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	payload["level"] = level
	payload["msg"] = msg

	b, err := json.Marshal(payload)
	if err != nil {
		logger.Printf(`{"level":"error","msg":"log_marshal_failed","error":%q}`, err.Error())
		return
	}
	logger.Print(string(b))
}

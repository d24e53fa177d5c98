// Package telemetry emits one JSON object per log line on stdout.
// Request logs, handler errors, and background failures all funnel
// through here so the API has a single greppable output format.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Info logs an informational event with the given fields.
func Info(msg string, fields map[string]any) {
	emit("info", msg, fields)
}

// Error logs a failure with the given fields.
func Error(msg string, fields map[string]any) {
	emit("error", msg, fields)
}

// emit writes one line. ts, level, and msg are reserved keys; caller
// fields with those names are dropped rather than clobbering them.
func emit(level, msg string, fields map[string]any) {
	line := make(map[string]any, len(fields)+3)
	line["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	line["level"] = level
	line["msg"] = msg
	for k, v := range fields {
		if k == "ts" || k == "level" || k == "msg" {
			continue
		}
		line[k] = v
	}
	data, err := json.Marshal(line)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":%q,"level":"error","msg":"log marshal failed","error":%q}`+"\n",
			time.Now().UTC().Format(time.RFC3339Nano), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}

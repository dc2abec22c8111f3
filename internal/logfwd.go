package internal

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

func getFileLine(distance int) (string, int) {
	_, file, line, ok := runtime.Caller(1 + distance)
	if !ok {
		file = "???"
		line = 0
	}

	parts := strings.Split(file, "/")
	file = parts[len(parts)-1]

	return file, line
}

func stdlog(distance int, s string, args ...interface{}) {
	file, line := getFileLine(distance)

	s = "%s %s " + s + "\n"
	linearg := fmt.Sprintf("%s:%d:", file, line)
	args = append([]interface{}{time.Now().Format("2006/01/02 15:04:05.000"), linearg}, args...)
	fmt.Fprintf(os.Stdout, s, args...)
}

// Debugf prints a debug log message to stdout when verbose is set
func Debugf(verbose bool, s string, args ...interface{}) {
	if !verbose {
		return
	}

	stdlog(2, s, args...)
}

// Logf logs to stdout
func Logf(s string, args ...interface{}) {
	stdlog(2, s, args...)
}

// LogError logs the error if one occurred
func LogError(err error) {
	if err != nil {
		stdlog(2, "error ignored: %+v", err)
	}
}

// IgnoreError logs the error when verbose is set
func IgnoreError(verbose bool, err error) {
	if verbose && err != nil {
		stdlog(2, "error ignored: %+v", err)
	}
}

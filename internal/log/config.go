package log

import (
	"io"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Format represents the output format for logs
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a string into a Format. Unknown names map to text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Output represents where logs should be written
type Output struct {
	writer io.Writer
}

// Writer returns the underlying io.Writer
func (o Output) Writer() io.Writer {
	if o.writer == nil {
		return os.Stderr
	}
	return o.writer
}

// Close releases a file-backed output
func (o Output) Close() error {
	if c, ok := o.writer.(io.Closer); ok && o.writer != os.Stderr && o.writer != os.Stdout {
		return c.Close()
	}
	return nil
}

// NewOutput creates an Output from an io.Writer
func NewOutput(w io.Writer) Output {
	return Output{writer: w}
}

// OutputStderr creates an Output that writes to stderr
func OutputStderr() Output {
	return Output{writer: os.Stderr}
}

// FileOptions controls rotation of a log file
type FileOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileOptions keeps a week of small logs
func DefaultFileOptions() FileOptions {
	return FileOptions{
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// OutputFile creates a rotating file output
func OutputFile(path string, opts FileOptions) Output {
	return Output{writer: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}}
}

// Config holds configuration for the logger
type Config struct {
	Level     Level
	Format    Format
	Output    Output
	AddSource bool

	// ServiceName and ServiceVersion are attached to every record
	ServiceName    string
	ServiceVersion string
}

// DefaultConfig logs warnings and above as text to stderr, keeping stdout
// free for command output.
func DefaultConfig() Config {
	return Config{
		Level:       LevelWarn,
		Format:      FormatText,
		Output:      OutputStderr(),
		ServiceName: "omsctl",
	}
}

// DebugConfig logs everything with source locations
func DebugConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = LevelDebug
	cfg.AddSource = true
	return cfg
}

package logger

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCommand is the structured log field key for the CLI command name.
	FieldCommand = "command"
	// FieldUserID is the structured log field key for the signed-in user.
	FieldUserID = "user_id"
	// FieldJobID is the structured log field key for a job.
	FieldJobID = "job_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a no-op
// logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the fields describing the running command and user.
// A nil user id is omitted.
func CommonFields(command string, userID *int64) []zap.Field {
	id := ""
	if userID != nil {
		id = strconv.FormatInt(*userID, 10)
	}

	return StringFields(
		StringField{Key: FieldCommand, Value: command},
		StringField{Key: FieldUserID, Value: id},
	)
}

func WithCommonFields(logger *zap.Logger, command string, userID *int64) *zap.Logger {
	return WithFields(logger, CommonFields(command, userID)...)
}

package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the service-wide structured logger. Output is JSON so log
// shippers can index the fields without parsing.
func NewLogger(level logrus.Level, logToFile bool, filePath string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if logToFile {
		file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Fatal("Could not open log file:", err)
		}
		logger.SetOutput(file)
		return logger
	}
	logger.SetOutput(os.Stdout)
	return logger
}

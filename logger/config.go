// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/NVIDIA/directmem/conf"
)

// multiWriter fans each log line out to every registered writer
type multiWriter struct {
	sync.Mutex
	writers []io.Writer
}

func (mw *multiWriter) addWriter(writer io.Writer) {
	mw.Lock()
	mw.writers = append(mw.writers, writer)
	mw.Unlock()
}

func (mw *multiWriter) Write(p []byte) (n int, err error) {
	mw.Lock()
	defer mw.Unlock()

	for _, writer := range mw.writers {
		n, err = writer.Write(p)
		if nil != err {
			return
		}
	}

	n = len(p)
	return
}

var (
	logFile   *os.File
	logOutput *multiWriter
)

// Up configures logging from the [Logging] section of confMap:
//
//	LogFilePath       : file to append log lines to (default none)
//	LogToConsole      : also log to stderr when LogFilePath is set (default false)
//	TraceLevelLogging : packages to enable trace logging for (or "none")
//	DebugLevelLogging : packages to enable debug logging for (or "none")
func Up(confMap conf.ConfMap) (err error) {
	log.SetFormatter(&log.TextFormatter{DisableColors: true})

	logOutput = &multiWriter{}

	logFilePath, _ := confMap.FetchOptionValueString("Logging", "LogFilePath")
	if logFilePath != "" {
		logFile, err = os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Errorf("couldn't open log file: %v", err)
			return err
		}
		logOutput.addWriter(logFile)
	}

	logToConsole, err := confMap.FetchOptionValueBool("Logging", "LogToConsole")
	if err != nil {
		logToConsole = false
	}

	if (logFilePath == "") || logToConsole {
		logOutput.addWriter(os.Stderr)
	}

	log.SetOutput(logOutput)

	// NOTE: We always enable max logging in logrus, and decide in
	// this package whether to log
	log.SetLevel(log.DebugLevel)

	traceConfSlice, _ := confMap.FetchOptionValueStringSlice("Logging", "TraceLevelLogging")
	setTraceLoggingLevel(traceConfSlice)

	debugConfSlice, _ := confMap.FetchOptionValueStringSlice("Logging", "DebugLevelLogging")
	setDebugLoggingLevel(debugConfSlice)

	return nil
}

// Down closes the log file opened by Up (if any) and returns logging to stderr
func Down() (err error) {
	log.SetOutput(os.Stderr)
	logOutput = nil

	if logFile != nil {
		err = logFile.Close()
		logFile = nil
	}
	return
}

func addLogTarget(writer io.Writer) {
	if nil == logOutput {
		logOutput = &multiWriter{}
		logOutput.addWriter(os.Stderr)
		log.SetOutput(logOutput)
	}
	logOutput.addWriter(writer)
}

func (log LogTarget) write(p []byte) (n int, err error) {
	fields := strings.TrimRight(string(p), "\n")

	log.LogBuf.TotalEntries++

	copy(log.LogBuf.LogEntries[1:], log.LogBuf.LogEntries[:len(log.LogBuf.LogEntries)-1])
	log.LogBuf.LogEntries[0] = fields

	n = len(p)
	return
}

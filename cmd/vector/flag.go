package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level")
	}
	l.value = v
	return nil
}

// nameListFlag collects a comma separated list of player names.
type nameListFlag struct {
	names []string
}

func (n *nameListFlag) String() string {
	return strings.Join(n.names, ",")
}

func (n *nameListFlag) Set(value string) error {
	for name := range strings.SplitSeq(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			n.names = append(n.names, name)
		}
	}
	return nil
}

// defined flags
var (
	levelFlag   logLevelFlag
	opsFlag     nameListFlag
	logFileFlag = flag.String("logfile", "", "Write logs to this file instead of the console")
	configFlag  = flag.String("config", "plugins/vector/config.yml", "Path of the vector config file")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
	flag.Var(&opsFlag, "ops", "comma separated names of players allowed to toggle and configure vector")
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// switchMode is the value of the auto|on|off flags --color and --ui.
type switchMode uint8

const (
	switchAuto switchMode = iota // follow whether stdout is a terminal
	switchOn
	switchOff
)

func parseSwitchMode(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on":
		return switchOn, nil
	case "off":
		return switchOff, nil
	default:
		return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled resolves the mode; auto is decided by tty.
func (m switchMode) enabled(tty bool) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	default:
		return tty
	}
}

// switchFlag reads a global auto|on|off flag and resolves it against stdout.
func switchFlag(cmd *cobra.Command, name string) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString(name)
	if err != nil {
		return false, err
	}
	mode, err := parseSwitchMode(name, value)
	if err != nil {
		return false, err
	}
	return mode.enabled(isTerminal(os.Stdout)), nil
}

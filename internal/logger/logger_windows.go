//go:build windows

package logger

import (
	"os"

	"golang.org/x/sys/windows"
)

const SupportsColorEscapes = true

func GetTerminalInfo(file *os.File) (info TerminalInfo) {
	fd := windows.Handle(file.Fd())

	// Is this file descriptor a console?
	var mode uint32
	if err := windows.GetConsoleMode(fd, &mode); err == nil {
		info.IsTTY = true

		// Modern Windows terminals handle ANSI escapes natively
		info.UseColorEscapes = mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 &&
			!hasNoColorEnvironmentVariable()

		var bufferInfo windows.ConsoleScreenBufferInfo
		if err := windows.GetConsoleScreenBufferInfo(fd, &bufferInfo); err == nil {
			info.Width = int(bufferInfo.Size.X)
		}
	}

	return
}

func writeStringWithColor(file *os.File, text string) {
	file.WriteString(text)
}

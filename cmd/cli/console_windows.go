//go:build windows

package main

import (
	"golang.org/x/sys/windows"
)

// Report summaries print severity colours and box-drawing icons, so the
// console needs UTF-8 output and ANSI processing. Redirected output is
// left alone; GetConsoleMode fails on pipes.
func init() {
	const utf8CodePage = 65001
	_ = windows.SetConsoleOutputCP(utf8CodePage)

	for _, std := range []uint32{windows.STD_OUTPUT_HANDLE, windows.STD_ERROR_HANDLE} {
		h, err := windows.GetStdHandle(std)
		if err != nil {
			continue
		}
		var mode uint32
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			continue
		}
		_ = windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
	}
}

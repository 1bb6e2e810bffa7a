// Package console detects how the process was started and keeps Ctrl+C
// working while SDL owns the main thread.
package console

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetConsoleWindow      = kernel32.NewProc("GetConsoleWindow")
	procFreeConsole           = kernel32.NewProc("FreeConsole")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

// Detached reports whether the program was started from Explorer rather
// than a terminal. A console window created for a double-clicked build is
// released so only the tray icon remains.
func Detached() bool {
	if !launchedFromExplorer() {
		return false
	}
	if hwnd, _, _ := procGetConsoleWindow.Call(); hwnd != 0 {
		procFreeConsole.Call()
	}
	return true
}

func launchedFromExplorer() bool {
	parent := parentProcessID(uint32(os.Getpid()))
	if parent == 0 {
		return false
	}
	return strings.EqualFold(filepath.Base(processImageName(parent)), "explorer.exe")
}

func parentProcessID(pid uint32) uint32 {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	for err = windows.Process32First(snapshot, &entry); err == nil; err = windows.Process32Next(snapshot, &entry) {
		if entry.ProcessID == pid {
			return entry.ParentProcessID
		}
	}
	return 0
}

func processImageName(pid uint32) string {
	process, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(process)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(process, 0, &buf[0], &size); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:size])
}

// NotifyInterrupt closes ch on Ctrl+C or Ctrl+Break. SDL installs its own
// console handler during init, so the returned function must be called
// again once SDL is up.
func NotifyInterrupt(ch chan struct{}) func() {
	var once sync.Once
	callback := windows.NewCallback(func(ctrlType uint32) uintptr {
		if ctrlType != windows.CTRL_C_EVENT && ctrlType != windows.CTRL_BREAK_EVENT {
			return 0
		}
		once.Do(func() { close(ch) })
		return 1
	})

	register := func() {
		if ok, _, _ := procSetConsoleCtrlHandler.Call(callback, 1); ok == 0 {
			log.Printf("Warning: Failed to set Windows console control handler")
		}
	}
	register()
	return register
}

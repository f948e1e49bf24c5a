package core

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores an output device to a sane state, tcell.Screen satisfies it
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashFinisher Finisher
	crashExit     = os.Exit
)

// RegisterCrashFinisher sets the device restored by HandleCrash before exit
func RegisterCrashFinisher(f Finisher) {
	crashMu.Lock()
	crashFinisher = f
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that restores the display and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	f := crashFinisher
	crashFinisher = nil
	crashMu.Unlock()

	if f != nil {
		f.Fini()
	}

	stack := debug.Stack()
	log.Printf("crash: %v\n%s", r, stack)

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword for engine loops so a crash restores the display.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

// Guard recovers a panic at a non-fatal boundary and logs it, must be deferred directly
// Input callbacks and tone workers use it: a lost beep or a dropped input is acceptable
func Guard(name string) {
	if r := recover(); r != nil {
		log.Printf("%s: recovered panic: %v", name, r)
	}
}

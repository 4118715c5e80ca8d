//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const ringSize = 1 << 20     // 1 MiB of scrollback
var binPath = "prodview_e2e" // set by TestMain

// Keys understood by the viewer
const (
	KeyCtrlC       = "\x03"
	KeyEsc         = "\x1b"
	KeyQuit        = "q"
	KeyNextImage   = "l"
	KeyPrevImage   = "h"
	KeyNextProduct = "]"
	KeyPrevProduct = "["
	KeyDescription = "d"
	KeyRescan      = "r"
	KeyHelp        = "?"
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// TUITestFramework drives the viewer in a PTY and records everything it draws
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string

	// Ring buffer for continuous output capture
	mu      sync.Mutex
	buf     []byte
	head    int
	full    bool
	written int64 // total bytes received, used by marks
}

// NewTUITest creates a new TUI test framework instance
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{
		t:   t,
		buf: make([]byte, ringSize),
	}
}

// StartApp launches prodview with the given arguments in a 40x120 PTY.
// Logs and config stay inside the test workspace.
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.t.Helper()
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return err
		}
	}

	base := []string{
		"--config", filepath.Join(tf.workspace, "config.toml"),
		"--log-file", filepath.Join(tf.workspace, "prodview.log"),
	}
	tf.cmd = exec.Command(binPath, append(base, args...)...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace, // isolate $HOME
		"PRODVIEW_E2E_TEST=1",
	)

	ptmx, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}
	tf.pty = ptmx

	tf.startReader()
	return nil
}

// Terminal queries sent while the program starts up, and the replies a
// real terminal would give. Unanswered, each one stalls for termenv's timeout.
var terminalReplies = []struct{ query, reply string }{
	{"\x1b]11;?", "\x1b]11;rgb:0000/0000/0000\x1b\\"},
	{"\x1b[6n", "\x1b[1;1R"},
}

// startReader copies PTY output into the ring buffer until the PTY closes
func (tf *TUITestFramework) startReader() {
	ptmx := tf.pty
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				chunk := string(buf[:n])
				for _, r := range terminalReplies {
					if strings.Contains(chunk, r.query) {
						_, _ = ptmx.Write([]byte(r.reply))
					}
				}
				tf.mu.Lock()
				for i := 0; i < n; i++ {
					tf.buf[tf.head] = buf[i]
					tf.head = (tf.head + 1) % ringSize
					if tf.head == 0 {
						tf.full = true
					}
				}
				tf.written += int64(n)
				tf.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
}

// SendKeys sends keystrokes to the application
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Press sends each key separately with a short pause so the viewer sees
// them as distinct key presses
func (tf *TUITestFramework) Press(keys ...string) {
	tf.t.Helper()
	for _, k := range keys {
		if err := tf.SendKeys(k); err != nil {
			tf.t.Fatalf("send %q: %v", k, err)
		}
		time.Sleep(30 * time.Millisecond)
	}
}

// SendCtrlC sends Ctrl+C to terminate the application
func (tf *TUITestFramework) SendCtrlC() error {
	tf.t.Helper()
	return tf.SendKeys(KeyCtrlC)
}

// Quit sends q
func (tf *TUITestFramework) Quit() error {
	tf.t.Helper()
	return tf.SendKeys(KeyQuit)
}

// Driver DSL helpers for readable test scripts

// Ready waits for the app to signal it's ready
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContains("__READY__", 15*time.Second)
}

// SeePlain waits for specific plain text to appear (normalized output)
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// Mark returns a position in the output stream for SeePlainSince
func (tf *TUITestFramework) Mark() int64 {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.written
}

// SeePlainSince waits for text to be drawn after mark
func (tf *TUITestFramework) SeePlainSince(mark int64, text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(tf.since(mark), ""), text)
	}, 3*time.Second)
}

func (tf *TUITestFramework) since(mark int64) string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	s := tf.snapshot()
	n := tf.written - mark
	if n <= 0 {
		return ""
	}
	if n > int64(len(s)) {
		return s
	}
	return s[int64(len(s))-n:]
}

// OutputContains checks if the output contains specific text within a timeout
func (tf *TUITestFramework) OutputContains(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(s, text) }, timeout)
}

// OutputContainsPlain checks if the normalized output contains specific text within a timeout
func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, timeout)
}

// WaitFor waits for a predicate to be true in the output
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond) // simple, reliable polling; tests only
	}
}

// WaitExit waits for the process to end
func (tf *TUITestFramework) WaitExit(timeout time.Duration) error {
	tf.t.Helper()
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		tf.cmd = nil
		return err
	case <-time.After(timeout):
		return fmt.Errorf("app did not exit within %s", timeout)
	}
}

// Snapshot returns the current contents of the ring buffer (thread-safe)
func (tf *TUITestFramework) Snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.snapshot()
}

// snapshot must be called with mu held
func (tf *TUITestFramework) snapshot() string {
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	out := make([]byte, ringSize)
	copy(out, tf.buf[tf.head:])
	copy(out[ringSize-tf.head:], tf.buf[:tf.head])
	return string(out)
}

// SnapshotPlain returns the current contents of the ring buffer with ANSI sequences removed
func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTailOnFail logs the last n bytes of normalized output when the test failed
func (tf *TUITestFramework) DumpTailOnFail(n int) {
	if !tf.t.Failed() {
		return
	}
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	tf.t.Logf("--- output tail ---\n%s", s)
}

// Cleanup closes the PTY and terminates the application
func (tf *TUITestFramework) Cleanup() {
	tf.DumpTailOnFail(4096)
	// Close PTY first to deliver SIGHUP to child process
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}

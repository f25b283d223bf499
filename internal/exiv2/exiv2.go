package exiv2

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
	"time"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"

	"depthsync/internal/failure"
	"depthsync/internal/tags"
)

const defaultBinary = "exiv2"

// exitNoExif is the exit status exiv2 uses for a readable image that has no
// Exif block. Files it cannot parse at all exit with 1.
const exitNoExif = 253

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

var xpEncoding = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)

// Client runs exiv2 for reads and writes.
type Client struct {
	Binary string
	// PreserveTimestamps keeps the file modification time on write (-k).
	PreserveTimestamps bool
	// Timeout bounds each invocation. Zero means only the caller's context applies.
	Timeout time.Duration
}

// New constructs a Client. An empty binary falls back to "exiv2" on PATH.
func New(binary string, preserveTimestamps bool, timeout time.Duration) *Client {
	return &Client{Binary: binary, PreserveTimestamps: preserveTimestamps, Timeout: timeout}
}

// ReadExif returns the EXIF tags of path keyed by exiv2 name. An image
// without Exif data yields an empty map.
func (c *Client) ReadExif(ctx context.Context, path string) (map[string]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, failure.Wrap(failure.ErrValidation, "exiv2", "read", "empty path", nil)
	}
	stdout, err := c.run(ctx, ReadArgs(path))
	if err != nil {
		if ctx.Err() == nil && noExifData(err) {
			return map[string]string{}, nil
		}
		return nil, failure.Wrap(marker(err), "exiv2", "read", path, err)
	}
	return ParseOutput(stdout), nil
}

// WriteTags stores set into path. The set is not modified.
func (c *Client) WriteTags(ctx context.Context, path string, set tags.Set) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return failure.Wrap(failure.ErrValidation, "exiv2", "write", "empty path", nil)
	}
	if len(set) == 0 {
		return nil
	}
	if _, err := c.run(ctx, WriteArgs(path, set, c.PreserveTimestamps)); err != nil {
		return failure.Wrap(marker(err), "exiv2", "write", path, err)
	}
	return nil
}

func (c *Client) binary() string {
	if c == nil {
		return defaultBinary
	}
	binary := strings.TrimSpace(c.Binary)
	if binary == "" {
		return defaultBinary
	}
	return binary
}

func (c *Client) run(ctx context.Context, args []string) ([]byte, error) {
	if c != nil && c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary(), args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return nil, fmt.Errorf("%w: %s", err, detail)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// ReadArgs returns the argument list used to print the EXIF tags of path.
func ReadArgs(path string) []string {
	return []string{"-q", "-PEkv", "--", path}
}

// WriteArgs returns the argument list used to write set into path.
func WriteArgs(path string, set tags.Set, preserveTimestamps bool) []string {
	args := []string{"-q"}
	if preserveTimestamps {
		args = append(args, "-k")
	}
	for _, key := range set.Keys() {
		args = append(args, "-M", SetCommand(key, set[key]))
	}
	return append(args, "--", path)
}

// marker classifies a run error. A binary that cannot be started fails every
// photo alike, so it is a configuration problem rather than a tool failure.
func marker(err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return failure.ErrConfiguration
	}
	return failure.ErrExternalTool
}

func noExifData(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == exitNoExif {
		return true
	}
	return strings.Contains(err.Error(), "No Exif data found")
}

// SetCommand renders one exiv2 modify command. Line breaks in the value are
// replaced with spaces since exiv2 reads one command per line. Windows XP
// tags are written as their byte encoding.
func SetCommand(key, value string) string {
	value = lineBreaks.Replace(value)
	if tags.WindowsXP(key) {
		value = EncodeXP(value)
	}
	if typ := tags.Type(key); typ != "" {
		return fmt.Sprintf("set %s %s %s", key, typ, value)
	}
	return fmt.Sprintf("set %s %s", key, value)
}

// EncodeXP renders value as the space separated bytes of its null
// terminated UCS-2LE form, the layout of the XPAuthor family of tags.
func EncodeXP(value string) string {
	encoded, err := xpEncoding.NewEncoder().String(strings.ToValidUTF8(value, "\uFFFD"))
	if err != nil {
		// UTF-16 represents every valid rune.
		encoded = ""
	}
	raw := append([]byte(encoded), 0, 0)
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = strconv.Itoa(int(b))
	}
	return strings.Join(parts, " ")
}

// ParseOutput parses "key value" lines as printed by exiv2 -PEkv.
func ParseOutput(data []byte) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value := line, ""
		if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
			key, value = line[:i], line[i:]
		}
		if !strings.Contains(key, ".") {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields
}

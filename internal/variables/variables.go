// Package variables resolves the VSCode-compatible snippet variable set
// against document and editor context.
package variables

import (
	"math/rand"
	"path/filepath"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
)

// Context carries the per-request inputs a resolver draws from. Path,
// selection and cursor values are fixed for the lifetime of the request;
// time and random variables re-evaluate on every reference.
type Context struct {
	FilePath     string
	Workspace    string
	Line         uint32
	Column       uint32
	LineText     string
	CurrentWord  string
	SelectedText string
	Clipboard    string
}

// ReadClipboard fills the Clipboard field, leaving it empty when no
// clipboard is reachable (headless sessions).
func (c *Context) ReadClipboard() {
	if text, err := clipboard.ReadAll(); err == nil {
		c.Clipboard = text
	}
}

// Names is the full registered variable list. Matching in the scanner
// always tries the longest name first, so TM_FILENAME_BASE is never
// split into TM_FILENAME + "_BASE".
var Names = []string{
	"TM_SELECTED_TEXT",
	"TM_CURRENT_LINE",
	"TM_CURRENT_WORD",
	"TM_LINE_INDEX",
	"TM_LINE_NUMBER",
	"TM_FILENAME_BASE",
	"TM_FILENAME",
	"TM_DIRECTORY",
	"TM_FILEPATH",
	"RELATIVE_FILEPATH",
	"CLIPBOARD",
	"WORKSPACE_NAME",
	"WORKSPACE_FOLDER",
	"CURSOR_INDEX",
	"CURSOR_NUMBER",
	"CURRENT_YEAR_SHORT",
	"CURRENT_YEAR",
	"CURRENT_MONTH_NAME_SHORT",
	"CURRENT_MONTH_NAME",
	"CURRENT_MONTH",
	"CURRENT_DATE",
	"CURRENT_DAY_NAME_SHORT",
	"CURRENT_DAY_NAME",
	"CURRENT_HOUR",
	"CURRENT_MINUTE",
	"CURRENT_SECOND",
	"CURRENT_SECONDS_UNIX",
	"CURRENT_TIMEZONE_OFFSET",
	"RANDOM_HEX",
	"RANDOM",
	"UUID",
}

// Resolve produces the value for one variable name. The second return is
// false for unregistered names, which the scanner leaves verbatim.
func (c *Context) Resolve(name string) (string, bool) {
	now := time.Now()

	switch name {
	case "TM_SELECTED_TEXT":
		return c.SelectedText, true
	case "TM_CURRENT_LINE":
		return c.LineText, true
	case "TM_CURRENT_WORD":
		return c.CurrentWord, true
	case "TM_LINE_INDEX":
		return strconv.FormatUint(uint64(c.Line), 10), true
	case "TM_LINE_NUMBER":
		return strconv.FormatUint(uint64(c.Line)+1, 10), true
	case "TM_FILENAME":
		return filepath.Base(c.FilePath), true
	case "TM_FILENAME_BASE":
		base := filepath.Base(c.FilePath)
		ext := filepath.Ext(base)
		return base[:len(base)-len(ext)], true
	case "TM_DIRECTORY":
		return filepath.Dir(c.FilePath), true
	case "TM_FILEPATH":
		return c.FilePath, true
	case "RELATIVE_FILEPATH":
		if rel, err := filepath.Rel(c.Workspace, c.FilePath); err == nil {
			return rel, true
		}
		return c.FilePath, true
	case "CLIPBOARD":
		return c.Clipboard, true
	case "WORKSPACE_NAME":
		return filepath.Base(c.Workspace), true
	case "WORKSPACE_FOLDER":
		return c.Workspace, true
	case "CURSOR_INDEX":
		return strconv.FormatUint(uint64(c.Column), 10), true
	case "CURSOR_NUMBER":
		return strconv.FormatUint(uint64(c.Column)+1, 10), true

	case "CURRENT_YEAR":
		return now.Format("2006"), true
	case "CURRENT_YEAR_SHORT":
		return now.Format("06"), true
	case "CURRENT_MONTH":
		return now.Format("01"), true
	case "CURRENT_MONTH_NAME":
		return now.Format("January"), true
	case "CURRENT_MONTH_NAME_SHORT":
		return now.Format("Jan"), true
	case "CURRENT_DATE":
		return now.Format("02"), true
	case "CURRENT_DAY_NAME":
		return now.Format("Monday"), true
	case "CURRENT_DAY_NAME_SHORT":
		return now.Format("Mon"), true
	case "CURRENT_HOUR":
		return now.Format("15"), true
	case "CURRENT_MINUTE":
		return now.Format("04"), true
	case "CURRENT_SECOND":
		return now.Format("05"), true
	case "CURRENT_SECONDS_UNIX":
		return strconv.FormatInt(now.Unix(), 10), true
	case "CURRENT_TIMEZONE_OFFSET":
		return now.Format("-07:00"), true

	case "RANDOM":
		return randomDigits("0123456789"), true
	case "RANDOM_HEX":
		return randomDigits("0123456789abcdef"), true
	case "UUID":
		return uuid.NewString(), true
	}
	return "", false
}

// Env renders every variable as a NAME=value pair for delivery to spawned
// processes. Each variable is evaluated exactly once per call.
func (c *Context) Env() []string {
	env := make([]string, 0, len(Names))
	for _, name := range Names {
		value, _ := c.Resolve(name)
		env = append(env, name+"="+value)
	}
	return env
}

func randomDigits(alphabet string) string {
	out := make([]byte, 6)
	for i := range out {
		out[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(out)
}

package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"
)

const maxKeyPadding = 50

func Color(w io.Writer) aurora.Aurora {
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		return aurora.NewAurora(SupportsANSICodes())
	}
	return aurora.NewAurora(false)
}

func Bold(text string) string {
	color := Color(os.Stdout)
	return color.Sprintf(color.Bold(text))
}

func RedText(text string) string {
	return Color(os.Stdout).Red(text).String()
}

func GreenText(text string) string {
	return Color(os.Stdout).Green(text).String()
}

func YellowText(text string) string {
	return Color(os.Stdout).Yellow(text).String()
}

func CyanText(text string) string {
	return Color(os.Stdout).Cyan(text).String()
}

func MagentaText(text string) string {
	return Color(os.Stdout).Magenta(text).String()
}

// WarningPrefix and ErrorPrefix lead every advisory and fatal line.
func WarningPrefix() string {
	color := Color(os.Stdout)
	return color.Sprintf(color.Bold(color.Yellow("Warning: ")))
}

func ErrorPrefix() string {
	color := Color(os.Stdout)
	return color.Sprintf(color.Bold(color.Red("Error: ")))
}

func Warning(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, WarningPrefix()+fmt.Sprintf(format, a...))
}

func Error(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, ErrorPrefix()+fmt.Sprintf(format, a...))
}

// KeyValues renders a map as aligned "key: value" lines in key order.
func KeyValues(in map[string]string) string {
	if len(in) == 0 {
		return ""
	}
	keys := make([]string, 0, len(in))
	width := 0
	for k := range in {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)
	if width > maxKeyPadding {
		width = maxKeyPadding
	}

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%-*s %s\n", width+1, k+":", in[k]))
	}
	return sb.String()
}

func UnorderedList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	return sb.String()
}

// PrefixLines prepends prefix to every line of s.
func PrefixLines(s, prefix string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"cinelookup/internal/media"
)

// parseTitleRef reads a "<movie|tv> <id>" argument pair.
func parseTitleRef(kindArg, idArg string) (media.Kind, int64, error) {
	kind, ok := media.ParseKind(kindArg)
	if !ok || !kind.Title() {
		return media.KindUnknown, 0, fmt.Errorf("unknown kind %q (use movie or tv)", kindArg)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(idArg), 10, 64)
	if err != nil || id <= 0 {
		return media.KindUnknown, 0, fmt.Errorf("invalid catalog id %q", idArg)
	}
	return kind, id, nil
}

func parseListKind(value string) (media.Kind, error) {
	kind, ok := media.ParseKind(value)
	if !ok || !kind.Title() {
		return media.KindUnknown, fmt.Errorf("unknown kind %q (use movie or tv)", value)
	}
	return kind, nil
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div := int64(unit)
	exp := 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(v) / float64(div)
	return fmt.Sprintf("%.1f %ciB", value, "KMGTPEZY"[exp])
}

func yearOrDash(year int) string {
	if year <= 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirm asks a yes/no question on interactive input. Piped or redirected
// input counts as consent so scripted runs are not blocked.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	if !isTerminal(in) {
		return true
	}
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidQuery         = errors.New("invalid query")
	ErrRemoteUnavailable    = errors.New("remote service unavailable")
	ErrNotFound             = errors.New("not found")
	ErrArtworkUnavailable   = errors.New("artwork unavailable")
	ErrConfigurationMissing = errors.New("configuration missing")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrRemoteUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// NoResultsMessage is shown for every failure that is not a configuration
// problem. Remote and artwork failures degrade silently.
const NoResultsMessage = "No results"

// UserMessage maps err to the text a user may see. Only missing
// configuration produces an actionable message; everything else collapses
// to NoResultsMessage. A nil error yields an empty string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrConfigurationMissing) {
		var hint *ConfigHint
		if errors.As(err, &hint) && hint.Message != "" {
			return hint.Message
		}
		return "Configuration missing: set the API key and try again"
	}
	return NoResultsMessage
}

// ConfigHint carries an actionable message alongside a configuration error.
type ConfigHint struct {
	Message string
}

func (h *ConfigHint) Error() string { return h.Message }

// MissingConfig returns an ErrConfigurationMissing error that renders hint
// verbatim through UserMessage.
func MissingConfig(component, setting, hint string) error {
	return Wrap(ErrConfigurationMissing, component, setting, "", &ConfigHint{Message: strings.TrimSpace(hint)})
}

// IsUserVisible reports whether err should interrupt the user. Only missing
// configuration qualifies.
func IsUserVisible(err error) bool {
	return errors.Is(err, ErrConfigurationMissing)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

package normalization

import (
  "strings"
)

// ParseInputString trims surrounding whitespace only. Emails are stored
// case-sensitive, so no case folding happens here.
func ParseInputString(input string) string {
  return strings.TrimSpace(input)
}

func ParseInputStringPtr(input *string) *string {
  if input == nil {
    return nil
  }
  normalized := strings.TrimSpace(*input)
  return &normalized
}

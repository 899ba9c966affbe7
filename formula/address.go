package formula

import (
	"strconv"
	"strings"
)

// colIndex converts an A1-style column letter run ("A", "Z", "AA", ...)
// into a 0-based index.
func colIndex(letters string) int {
	col := 0
	for _, ch := range strings.ToUpper(letters) {
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1
}

// colLetters is the inverse of colIndex.
func colLetters(index int) string {
	index++
	var out []byte
	for index > 0 {
		index--
		out = append([]byte{byte('A' + index%26)}, out...)
		index /= 26
	}
	return string(out)
}

// splitCellRef splits "A1" into ("A", 0) (row 0-based), or returns ok=false.
func splitCellRef(s string) (letters string, row int, ok bool) {
	letterEnd := 0
	for i, ch := range s {
		if isAlpha(ch) {
			letterEnd = i + 1
		} else {
			break
		}
	}
	if letterEnd == 0 || letterEnd == len(s) {
		return "", 0, false
	}
	n, err := strconv.Atoi(s[letterEnd:])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return s[:letterEnd], n - 1, true
}

// splitSheetPrefix separates an optional "Sheet1!" / "'My Sheet'!" prefix
// from the remainder of a reference token.
func splitSheetPrefix(s string) (sheetName string, rest string, hasSheet bool) {
	idx := strings.LastIndex(s, "!")
	if idx == -1 {
		return "", s, false
	}
	name := s[:idx]
	if strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") && len(name) >= 2 {
		name = name[1 : len(name)-1]
		name = strings.ReplaceAll(name, "''", "'")
	}
	return name, s[idx+1:], true
}

// quoteSheetName quotes a sheet name for use in formula text if it
// contains characters that would otherwise be ambiguous in an
// unquoted reference (space, '!', or a leading digit).
func quoteSheetName(name string) string {
	needsQuote := name == ""
	for i, ch := range name {
		if ch == ' ' || ch == '!' || ch == '\'' {
			needsQuote = true
		}
		if i == 0 && isDigit(ch) {
			needsQuote = true
		}
	}
	if !needsQuote {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

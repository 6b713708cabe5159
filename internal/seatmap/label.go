package seatmap

import (
	"strconv"
	"strings"
)

// RowLabel converts a zero-based row index to its display label.  Labels
// run A..Z and then continue AA, AB, ... like spreadsheet columns.  A
// negative index yields an empty string.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// RowIndex is the inverse of RowLabel.  It is case insensitive and reports
// false for anything that is not made of ASCII letters.
func RowIndex(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}

// ColumnLabel converts a zero-based column index to its 1-based display number.
func ColumnLabel(i int) string {
	return strconv.Itoa(i + 1)
}

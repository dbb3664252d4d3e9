package ui

import (
	"strconv"
	"strings"
)

// Handle renders "@username", falling back to the numeric id.
func Handle(username string, id int64) string {
	name := strings.TrimPrefix(strings.TrimSpace(username), "@")
	if name != "" {
		return "@" + name
	}
	return strconv.FormatInt(id, 10)
}

func signed(amount int64) string {
	if amount > 0 {
		return "+" + strconv.FormatInt(amount, 10)
	}
	return strconv.FormatInt(amount, 10)
}

package utils

import (
	"strings"
	"time"
)

// ParseDate interpreta datas no formato 2006-01-02; texto vazio resulta em nil
func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

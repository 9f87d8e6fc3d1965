// Package service содержит бизнес-логику приложения.
package service

import (
	crand "crypto/rand"
	"fmt"
	"math/big"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// Базы диапазонов приоритета по серьёзности: base + random(0,19),
// у critical - random(0,9), чтобы не выйти за 99.
const (
	priorityBaseLow      = 30
	priorityBaseMedium   = 50
	priorityBaseHigh     = 70
	priorityBaseCritical = 90

	priorityJitter         = 20
	priorityJitterCritical = 10
)

// priorityForSeverity вычисляет приоритет заявки один раз при создании.
// Значение больше никогда не пересчитывается.
func priorityForSeverity(severity storage.Severity) (int, error) {
	base, jitter := priorityBaseMedium, priorityJitter
	switch severity {
	case storage.SeverityLow:
		base = priorityBaseLow
	case storage.SeverityMedium:
		base = priorityBaseMedium
	case storage.SeverityHigh:
		base = priorityBaseHigh
	case storage.SeverityCritical:
		base, jitter = priorityBaseCritical, priorityJitterCritical
	}

	n, err := randInt(jitter)
	if err != nil {
		return 0, err
	}
	return base + n, nil
}

// randInt возвращает случайное число в диапазоне [0, n).
func randInt(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid upper bound: %d", n)
	}
	bn := big.NewInt(int64(n))
	x, err := crand.Int(crand.Reader, bn)
	if err != nil {
		return 0, fmt.Errorf("getting rand failed: %w", err)
	}
	return int(x.Int64()), nil
}

package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func ptr(v float64) *float64 {
	return &v
}

type MockCache struct {
	Data       map[string]string
	GetCalls   int
	SetCalls   int
	ForceError bool
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string]string)}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool, error) {
	m.GetCalls++
	if m.ForceError {
		return "", false, errors.New("cache unavailable")
	}
	val, ok := m.Data[key]
	return val, ok, nil
}

func (m *MockCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.SetCalls++
	if m.ForceError {
		return errors.New("cache unavailable")
	}
	m.Data[key] = value
	return nil
}

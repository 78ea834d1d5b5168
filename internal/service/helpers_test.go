package service

import (
	"context"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 4, 10, 14, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func fakeClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(testNow)
}

func u64(v uint64) *uint64 { return &v }

// mockMailer 记录发出的验证邮件
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerification(ctx context.Context, to, verificationURL string) error {
	args := m.Called(ctx, to, verificationURL)
	return args.Error(0)
}

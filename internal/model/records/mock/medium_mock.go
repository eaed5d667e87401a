package mock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gojuno/minimock/v3"
)

// MediumMock implements the medium consumed by records.Store.
type MediumMock struct {
	t minimock.Tester

	funcRead         func(ctx context.Context, key string) (string, bool, error)
	inspectFuncRead  func(ctx context.Context, key string)
	afterReadCounter uint64
	ReadMock         mMediumMockRead

	funcWrite         func(ctx context.Context, key, value string) error
	inspectFuncWrite  func(ctx context.Context, key, value string)
	afterWriteCounter uint64
	WriteMock         mMediumMockWrite
}

func NewMediumMock(t minimock.Tester) *MediumMock {
	m := &MediumMock{t: t}
	if controller, ok := t.(minimock.MockController); ok {
		controller.RegisterMocker(m)
	}

	m.ReadMock = mMediumMockRead{mock: m}
	m.WriteMock = mMediumMockWrite{mock: m}
	return m
}

type mMediumMockRead struct {
	mock     *MediumMock
	expected *string
}

// Expect sets up the expected key for Read.
func (mmRead *mMediumMockRead) Expect(key string) *mMediumMockRead {
	mmRead.expected = &key
	return mmRead
}

// Inspect accepts an inspector function called before every Read.
func (mmRead *mMediumMockRead) Inspect(f func(ctx context.Context, key string)) *mMediumMockRead {
	mmRead.mock.inspectFuncRead = f
	return mmRead
}

// Return sets up the results of Read.
func (mmRead *mMediumMockRead) Return(value string, ok bool, err error) *MediumMock {
	mmRead.mock.funcRead = func(context.Context, string) (string, bool, error) {
		return value, ok, err
	}
	return mmRead.mock
}

// Set uses f as the Read implementation.
func (mmRead *mMediumMockRead) Set(f func(ctx context.Context, key string) (string, bool, error)) *MediumMock {
	mmRead.mock.funcRead = f
	return mmRead.mock
}

func (mmRead *MediumMock) Read(ctx context.Context, key string) (string, bool, error) {
	defer atomic.AddUint64(&mmRead.afterReadCounter, 1)

	if mmRead.inspectFuncRead != nil {
		mmRead.inspectFuncRead(ctx, key)
	}
	if want := mmRead.ReadMock.expected; want != nil && *want != key {
		mmRead.t.Errorf("MediumMock.Read got unexpected key %q, want %q", key, *want)
	}
	if mmRead.funcRead == nil {
		mmRead.t.Fatalf("Unexpected call to MediumMock.Read. %v", key)
		return "", false, nil
	}
	return mmRead.funcRead(ctx, key)
}

// ReadAfterCounter returns the count of finished Read invocations.
func (mmRead *MediumMock) ReadAfterCounter() uint64 {
	return atomic.LoadUint64(&mmRead.afterReadCounter)
}

type mMediumMockWrite struct {
	mock     *MediumMock
	expected *string
}

// Expect sets up the expected key for Write.
func (mmWrite *mMediumMockWrite) Expect(key string) *mMediumMockWrite {
	mmWrite.expected = &key
	return mmWrite
}

// Inspect accepts an inspector function called before every Write.
func (mmWrite *mMediumMockWrite) Inspect(f func(ctx context.Context, key, value string)) *mMediumMockWrite {
	mmWrite.mock.inspectFuncWrite = f
	return mmWrite
}

// Return sets up the result of Write.
func (mmWrite *mMediumMockWrite) Return(err error) *MediumMock {
	mmWrite.mock.funcWrite = func(context.Context, string, string) error {
		return err
	}
	return mmWrite.mock
}

// Set uses f as the Write implementation.
func (mmWrite *mMediumMockWrite) Set(f func(ctx context.Context, key, value string) error) *MediumMock {
	mmWrite.mock.funcWrite = f
	return mmWrite.mock
}

func (mmWrite *MediumMock) Write(ctx context.Context, key, value string) error {
	defer atomic.AddUint64(&mmWrite.afterWriteCounter, 1)

	if mmWrite.inspectFuncWrite != nil {
		mmWrite.inspectFuncWrite(ctx, key, value)
	}
	if want := mmWrite.WriteMock.expected; want != nil && *want != key {
		mmWrite.t.Errorf("MediumMock.Write got unexpected key %q, want %q", key, *want)
	}
	if mmWrite.funcWrite == nil {
		mmWrite.t.Fatalf("Unexpected call to MediumMock.Write. %v %v", key, value)
		return nil
	}
	return mmWrite.funcWrite(ctx, key, value)
}

// WriteAfterCounter returns the count of finished Write invocations.
func (mmWrite *MediumMock) WriteAfterCounter() uint64 {
	return atomic.LoadUint64(&mmWrite.afterWriteCounter)
}

// MinimockFinish checks that every expected method was called.
func (m *MediumMock) MinimockFinish() {
	if m.ReadMock.expected != nil && m.ReadAfterCounter() == 0 {
		m.t.Errorf("Expected call to MediumMock.Read with key %q", *m.ReadMock.expected)
	}
	if m.WriteMock.expected != nil && m.WriteAfterCounter() == 0 {
		m.t.Errorf("Expected call to MediumMock.Write with key %q", *m.WriteMock.expected)
	}
}

// MinimockWait waits for all mocked methods to be called the expected number of times.
func (m *MediumMock) MinimockWait(timeout time.Duration) {
	timeoutCh := time.After(timeout)
	for {
		if m.minimockDone() {
			return
		}
		select {
		case <-timeoutCh:
			m.MinimockFinish()
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func (m *MediumMock) minimockDone() bool {
	return (m.ReadMock.expected == nil || m.ReadAfterCounter() > 0) &&
		(m.WriteMock.expected == nil || m.WriteAfterCounter() > 0)
}

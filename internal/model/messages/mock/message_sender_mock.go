package mock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gojuno/minimock/v3"
)

type MessageSenderMockSendMessageParams struct {
	Text   string
	UserID int64
}

// MessageSenderMock implements the messageSender consumed by messages.Service.
type MessageSenderMock struct {
	t minimock.Tester

	funcSendMessage         func(text string, userID int64) error
	inspectFuncSendMessage  func(text string, userID int64)
	afterSendMessageCounter uint64
	SendMessageMock         mMessageSenderMockSendMessage

	mu    sync.Mutex
	calls []MessageSenderMockSendMessageParams
}

func NewMessageSenderMock(t minimock.Tester) *MessageSenderMock {
	m := &MessageSenderMock{t: t}
	if controller, ok := t.(minimock.MockController); ok {
		controller.RegisterMocker(m)
	}

	m.SendMessageMock = mMessageSenderMockSendMessage{mock: m}
	return m
}

type mMessageSenderMockSendMessage struct {
	mock     *MessageSenderMock
	expected *MessageSenderMockSendMessageParams
}

// Expect sets up the expected params for SendMessage.
func (mmSendMessage *mMessageSenderMockSendMessage) Expect(text string, userID int64) *mMessageSenderMockSendMessage {
	mmSendMessage.expected = &MessageSenderMockSendMessageParams{Text: text, UserID: userID}
	return mmSendMessage
}

// Inspect accepts an inspector function called before every SendMessage.
func (mmSendMessage *mMessageSenderMockSendMessage) Inspect(f func(text string, userID int64)) *mMessageSenderMockSendMessage {
	mmSendMessage.mock.inspectFuncSendMessage = f
	return mmSendMessage
}

// Return sets up the result of SendMessage.
func (mmSendMessage *mMessageSenderMockSendMessage) Return(err error) *MessageSenderMock {
	mmSendMessage.mock.funcSendMessage = func(string, int64) error {
		return err
	}
	return mmSendMessage.mock
}

func (mmSendMessage *MessageSenderMock) SendMessage(text string, userID int64) error {
	defer atomic.AddUint64(&mmSendMessage.afterSendMessageCounter, 1)

	mmSendMessage.mu.Lock()
	mmSendMessage.calls = append(mmSendMessage.calls, MessageSenderMockSendMessageParams{Text: text, UserID: userID})
	mmSendMessage.mu.Unlock()

	if mmSendMessage.inspectFuncSendMessage != nil {
		mmSendMessage.inspectFuncSendMessage(text, userID)
	}
	if want := mmSendMessage.SendMessageMock.expected; want != nil &&
		(want.Text != text || want.UserID != userID) {
		mmSendMessage.t.Errorf("MessageSenderMock.SendMessage got unexpected params %q %d, want %q %d",
			text, userID, want.Text, want.UserID)
	}
	if mmSendMessage.funcSendMessage == nil {
		mmSendMessage.t.Fatalf("Unexpected call to MessageSenderMock.SendMessage. %v %v", text, userID)
		return nil
	}
	return mmSendMessage.funcSendMessage(text, userID)
}

// SendMessageAfterCounter returns the count of finished SendMessage invocations.
func (mmSendMessage *MessageSenderMock) SendMessageAfterCounter() uint64 {
	return atomic.LoadUint64(&mmSendMessage.afterSendMessageCounter)
}

// Calls returns the params of every SendMessage call in order.
func (mmSendMessage *MessageSenderMock) Calls() []MessageSenderMockSendMessageParams {
	mmSendMessage.mu.Lock()
	defer mmSendMessage.mu.Unlock()

	res := make([]MessageSenderMockSendMessageParams, len(mmSendMessage.calls))
	copy(res, mmSendMessage.calls)
	return res
}

// MinimockFinish checks that every expected method was called.
func (m *MessageSenderMock) MinimockFinish() {
	if m.SendMessageMock.expected != nil && m.SendMessageAfterCounter() == 0 {
		m.t.Errorf("Expected call to MessageSenderMock.SendMessage with params %+v", *m.SendMessageMock.expected)
	}
}

// MinimockWait waits for all mocked methods to be called the expected number of times.
func (m *MessageSenderMock) MinimockWait(timeout time.Duration) {
	timeoutCh := time.After(timeout)
	for {
		if m.SendMessageMock.expected == nil || m.SendMessageAfterCounter() > 0 {
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

// Package chatui implements the terminal interface: a landing page for
// picking a thread and the chat room view.
package chatui

import (
	"context"

	"github.com/awasaki/threadchat/internal/topics"
)

// IncomingMsg carries one payload received from the connection channel.
// The program wiring forwards every subscribed payload as one of these.
type IncomingMsg struct {
	Payload string
}

// Sender is the outbound half of the connection channel as the views see it.
type Sender interface {
	Send(payload string) error
}

// ThreadDirectory lists and creates live threads. *topics.Client satisfies
// it; tests substitute a fake.
type ThreadDirectory interface {
	List(ctx context.Context) ([]topics.Topic, error)
	Create(ctx context.Context, title, userPostingID string) (topics.Topic, error)
}

type threadChosenMsg struct {
	title string
}

type threadsLoadedMsg struct {
	threads []topics.Topic
}

type threadsErrMsg struct {
	err error
}

type threadCreatedMsg struct {
	topic topics.Topic
}

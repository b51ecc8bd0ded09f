package mailer

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	raw := string(Compose(Message{
		From:    "shop@example.com",
		To:      []string{"ops@example.com", "owner@example.com"},
		Subject: "New Order #NS1",
		HTML:    "<p>hi</p>\n<p>there</p>",
	}))

	assert.Contains(t, raw, "From: shop@example.com\r\n")
	assert.Contains(t, raw, "To: ops@example.com, owner@example.com\r\n")
	assert.Contains(t, raw, "Subject: New Order #NS1\r\n")
	assert.Contains(t, raw, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>hi</p>\r\n<p>there</p>"))
}

func TestSend_NoRecipients(t *testing.T) {
	err := NewClient(Config{Host: "localhost", Port: 25}).Send(context.Background(), Message{From: "a@b"})
	assert.Error(t, err)
}

func TestSend_RespectsDeadline(t *testing.T) {
	// A listener that accepts but never greets.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	client := NewClient(Config{Host: "127.0.0.1", Port: addr.Port})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = client.Send(ctx, Message{From: "a@example.com", To: []string{"b@example.com"}})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

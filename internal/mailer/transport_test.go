package mailer

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type smtpSession struct {
	commands []string
	data     string
}

// startFakeSMTP accepts one connection and answers just enough of the
// protocol for a plain, unauthenticated delivery.
func startFakeSMTP(t *testing.T) (*net.TCPAddr, <-chan smtpSession) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	done := make(chan smtpSession, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tp := textproto.NewConn(conn)
		var sess smtpSession
		_ = tp.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			sess.commands = append(sess.commands, line)
			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				_ = tp.PrintfLine("250 localhost")
			case strings.HasPrefix(cmd, "MAIL FROM"), strings.HasPrefix(cmd, "RCPT TO"):
				_ = tp.PrintfLine("250 OK")
			case cmd == "DATA":
				_ = tp.PrintfLine("354 End data with <CR><LF>.<CR><LF>")
				lines, err := tp.ReadDotLines()
				if err != nil {
					return
				}
				sess.data = strings.Join(lines, "\n")
				_ = tp.PrintfLine("250 OK queued")
			case cmd == "QUIT":
				_ = tp.PrintfLine("221 Bye")
				done <- sess
				return
			default:
				_ = tp.PrintfLine("502 not implemented")
			}
		}
	}()

	return ln.Addr().(*net.TCPAddr), done
}

func TestSMTPTransportDelivers(t *testing.T) {
	addr, done := startFakeSMTP(t)

	transport := &SMTPTransport{Host: addr.IP.String(), Port: addr.Port, Timeout: 5 * time.Second}
	msg := []byte("Subject: hi\r\n\r\nhello\r\n")
	require.NoError(t, transport.Send(context.Background(), "noreply@acme.test", []string{"ann@x.com"}, msg))

	select {
	case sess := <-done:
		assert.Contains(t, sess.commands, "MAIL FROM:<noreply@acme.test>")
		assert.Contains(t, sess.commands, "RCPT TO:<ann@x.com>")
		assert.Contains(t, sess.data, "hello")
	case <-time.After(5 * time.Second):
		t.Fatal("smtp session did not finish")
	}
}

func TestSMTPTransportDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, ln.Close())

	transport := &SMTPTransport{Host: addr.IP.String(), Port: addr.Port, Timeout: time.Second}
	err = transport.Send(context.Background(), "a@b.co", []string{"c@d.co"}, []byte("x"))
	assert.Error(t, err)
}

func TestSMTPTransportCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := &SMTPTransport{Host: "127.0.0.1", Port: 25}
	err := transport.Send(ctx, "a@b.co", []string{"c@d.co"}, []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeSES struct {
	input *ses.SendRawEmailInput
	err   error
}

func (f *fakeSES) SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESTransportSendsRawMessage(t *testing.T) {
	client := &fakeSES{}
	transport := &SESTransport{client: client}

	msg := []byte("Subject: hi\r\n\r\nhello")
	require.NoError(t, transport.Send(context.Background(), "noreply@acme.test", []string{"ann@x.com"}, msg))
	require.NotNil(t, client.input)
	assert.Equal(t, "noreply@acme.test", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ann@x.com"}, client.input.Destinations)
	assert.Equal(t, msg, client.input.RawMessage.Data)
}

func TestSESTransportWrapsError(t *testing.T) {
	transport := &SESTransport{client: &fakeSES{err: errors.New("throttled")}}
	err := transport.Send(context.Background(), "a@b.co", []string{"c@d.co"}, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestLogTransportSucceeds(t *testing.T) {
	assert.NoError(t, LogTransport{}.Send(context.Background(), "a@b.co", []string{"c@d.co"}, []byte("x")))
}

package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Client is a websocket connection to the battle engine's event stream.
type Client struct {
	Conn *websocket.Conn
}

// Dialer creates stream clients, rate-limiting connection attempts so a
// flapping server is not hammered by the reconnect loop.
type Dialer struct {
	url     string
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewDialer returns a dialer for the given websocket endpoint, allowing one
// connection attempt per two seconds with a small burst.
func NewDialer(serverURL string, log *slog.Logger) (*Dialer, error) {
	if _, err := url.Parse(serverURL); err != nil {
		return nil, fmt.Errorf("parse stream url: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Dialer{
		url:     serverURL,
		limiter: rate.NewLimiter(rate.Limit(0.5), 2),
		log:     log,
	}, nil
}

// Dial opens a new stream connection, blocking for the rate limiter first.
func (d *Dialer) Dial(ctx context.Context) (*Client, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for reconnect slot: %w", err)
	}

	d.log.Info("connecting to battle stream", "url", d.url)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial battle stream: %w", err)
	}

	d.log.Info("connected to battle stream")
	return &Client{Conn: conn}, nil
}

// Send writes one text message to the stream.
func (c *Client) Send(message string) error {
	return c.Conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// JoinRoom asks the engine to stream a battle room to this connection.
func (c *Client) JoinRoom(roomID string) error {
	return c.Send(fmt.Sprintf("|/join %s", roomID))
}

// ReadBatch blocks for the next raw event batch from the stream.
func (c *Client) ReadBatch() (string, error) {
	_, message, err := c.Conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("read battle stream: %w", err)
	}
	return string(message), nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.Conn.Close()
}

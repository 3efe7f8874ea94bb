package sdk

import (
	"bufio"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wargadata-dev/warga-store/pkg/schema"
)

// Client is a remote client for the Warga Store daemon. It implements
// RecordStore and Exporter.
type Client struct {
	addr   string
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex // Protects concurrent access to the connection
}

// Connect establishes a TLS-encrypted connection to a remote daemon.
// If WARGA_DISABLE_TLS is set to "true", it falls back to plain TCP.
func Connect(addr string) (*Client, error) {
	c := &Client{addr: addr}
	if err := c.reconnect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) reconnect() error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	var conn net.Conn
	var err error

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 60 * time.Second,
	}

	if os.Getenv("WARGA_DISABLE_TLS") == "true" {
		conn, err = dialer.Dial("tcp", c.addr)
	} else {
		config := &tls.Config{
			InsecureSkipVerify: true, // Self-signed certs for internal traffic
		}
		conn, err = tls.DialWithDialer(dialer, "tcp", c.addr, config)
	}

	if err != nil {
		return err
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close terminates the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// sendAndReceive writes one command line and reads one response line,
// retrying up to 3 times with backoff on connection trouble.
func (c *Client) sendAndReceive(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	var resp string

	for i := 0; i < 3; i++ {
		if c.conn == nil {
			if reconnectErr := c.reconnect(); reconnectErr != nil {
				err = fmt.Errorf("reconnect failed: %w", reconnectErr)
				time.Sleep(time.Duration(i*100) * time.Millisecond)
				continue
			}
		}

		c.conn.SetDeadline(time.Now().Add(30 * time.Second))

		_, err = fmt.Fprint(c.conn, cmd+"\n")
		if err == nil {
			resp, err = c.reader.ReadString('\n')
			if err == nil {
				resp = strings.TrimRight(resp, "\r\n")
				if strings.HasPrefix(resp, "ERR") {
					return "", fmt.Errorf("%s", strings.TrimPrefix(resp, "ERR "))
				}
				return resp, nil
			}
		}

		fmt.Fprintf(os.Stderr, "[Warga SDK] Attempt %d failed: %v. Reconnecting...\n", i+1, err)

		if closeErr := c.reconnect(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "[Warga SDK] Reconnect attempt failed: %v\n", closeErr)
		}

		time.Sleep(time.Duration((i+1)*200) * time.Millisecond)
	}

	return "", fmt.Errorf("failed after 3 attempts. last error: %v", err)
}

func (c *Client) Add(name, nationalID, address, amount string) (schema.Record, error) {
	payload, err := json.Marshal(map[string]string{
		"name":       name,
		"nationalId": nationalID,
		"address":    address,
		"amount":     amount,
	})
	if err != nil {
		return schema.Record{}, err
	}

	resp, err := c.sendAndReceive("ADD " + string(payload))
	if err != nil {
		return schema.Record{}, err
	}

	var rec schema.Record
	if err := json.Unmarshal([]byte(strings.TrimPrefix(resp, "OK ")), &rec); err != nil {
		return schema.Record{}, fmt.Errorf("malformed server response: %w", err)
	}
	return rec, nil
}

func (c *Client) Delete(id int64) error {
	_, err := c.sendAndReceive(fmt.Sprintf("DEL %d", id))
	return err
}

func (c *Client) DeleteAll() error {
	_, err := c.sendAndReceive("CLEAR")
	return err
}

func (c *Client) List() ([]schema.Record, error) {
	return c.records("LIST")
}

func (c *Client) Search(query string) ([]schema.Record, error) {
	if query == "" {
		return c.List()
	}
	return c.records("SEARCH " + query)
}

func (c *Client) records(cmd string) ([]schema.Record, error) {
	resp, err := c.sendAndReceive(cmd)
	if err != nil {
		return nil, err
	}
	var records []schema.Record
	if err := json.Unmarshal([]byte(strings.TrimPrefix(resp, "OK ")), &records); err != nil {
		return nil, fmt.Errorf("malformed server response: %w", err)
	}
	return records, nil
}

// Export asks the daemon to build a report ("xlsx", "pdf", or "doc")
// and returns the server-side path of the written file.
func (c *Client) Export(kind string) (string, error) {
	resp, err := c.sendAndReceive("EXPORT " + kind)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(resp, "OK "), nil
}

// Ping checks daemon liveness.
func (c *Client) Ping() error {
	resp, err := c.sendAndReceive("PING")
	if err != nil {
		return err
	}
	if resp != "PONG" {
		return fmt.Errorf("unexpected ping response: %q", resp)
	}
	return nil
}

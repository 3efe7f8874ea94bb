// Package server implements the line-based TCP protocol the SDK and
// CLI speak to the daemon.
package server

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wargadata-dev/warga-store/internal/export"
	"github.com/wargadata-dev/warga-store/internal/registry"
	"github.com/wargadata-dev/warga-store/internal/validate"
)

type Router struct {
	reg      *registry.Registry
	exporter *export.Coordinator
	cert     *tls.Certificate

	mu       sync.Mutex
	listener net.Listener
}

func NewRouter(reg *registry.Registry, exporter *export.Coordinator) *Router {
	return &Router{reg: reg, exporter: exporter}
}

// SetCertificate sets the TLS certificate for the router
func (r *Router) SetCertificate(cert tls.Certificate) {
	r.cert = &cert
}

// Addr returns the bound listener address, or "" before Listen.
func (r *Router) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return ""
	}
	return r.listener.Addr().String()
}

// Stop closes the listener, unblocking Listen.
func (r *Router) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener != nil {
		r.listener.Close()
		r.listener = nil
	}
}

// Listen starts the TCP server and serves until Stop or a fatal
// listener error.
func (r *Router) Listen(port string) error {
	var listener net.Listener
	var err error

	if r.cert != nil {
		config := &tls.Config{Certificates: []tls.Certificate{*r.cert}}
		listener, err = tls.Listen("tcp", ":"+port, config)
	} else {
		listener, err = net.Listen("tcp", ":"+port)
	}
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.listener = listener
	r.mu.Unlock()
	defer r.Stop()

	semaphore := make(chan struct{}, 100) // Max 100 concurrent connections

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}

		conn.SetDeadline(time.Now().Add(5 * time.Minute))

		go func(c net.Conn) {
			semaphore <- struct{}{}
			defer func() {
				<-semaphore
				c.Close()
			}()
			r.handleConnection(c)
		}(conn)
	}
}

func (r *Router) handleConnection(conn net.Conn) {
	reader := bufio.NewReader(conn)

	for {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))

		line, err := reader.ReadString('\n')
		if err != nil {
			return // Connection closed or timeout
		}

		// Only line endings are stripped: SEARCH matches the query
		// exactly as typed, interior and trailing spaces included.
		line = strings.TrimRight(line, "\r\n")
		parts := strings.SplitN(line, " ", 2)
		command := strings.ToUpper(parts[0])
		rest := ""
		if len(parts) == 2 {
			rest = parts[1]
		}
		if command == "" {
			continue
		}

		switch command {
		case "ADD":
			var input struct {
				Name       string `json:"name"`
				NationalID string `json:"nationalId"`
				Address    string `json:"address"`
				Amount     string `json:"amount"`
			}
			if err := json.Unmarshal([]byte(rest), &input); err != nil {
				fmt.Fprintln(conn, "ERR invalid json payload")
				continue
			}
			existing, _ := r.reg.List()
			if err := validate.Validate(input.Name, input.NationalID, existing); err != nil {
				fmt.Fprintln(conn, "ERR", err)
				continue
			}
			rec, err := r.reg.Add(input.Name, input.NationalID, input.Address, input.Amount)
			if err != nil {
				fmt.Fprintln(conn, "ERR", err)
				continue
			}
			res, err := json.Marshal(rec)
			if err != nil {
				fmt.Fprintln(conn, "ERR internal error")
			} else {
				fmt.Fprintln(conn, "OK", string(res))
			}

		case "DEL":
			id, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
			if err != nil {
				fmt.Fprintln(conn, "ERR invalid record id")
				continue
			}
			if err := r.reg.Delete(id); err != nil {
				fmt.Fprintln(conn, "ERR", err)
			} else {
				fmt.Fprintln(conn, "OK")
			}

		case "CLEAR":
			if err := r.reg.DeleteAll(); err != nil {
				fmt.Fprintln(conn, "ERR", err)
			} else {
				fmt.Fprintln(conn, "OK")
			}

		case "LIST":
			r.replyRecords(conn, "")

		case "SEARCH":
			r.replyRecords(conn, rest)

		case "COUNT":
			fmt.Fprintln(conn, "OK", r.reg.Count())

		case "EXPORT":
			r.handleExport(conn, strings.TrimSpace(rest))

		case "PING":
			fmt.Fprintln(conn, "PONG")

		case "QUIT":
			return

		default:
			fmt.Fprintln(conn, "ERR unknown command")
		}
	}
}

func (r *Router) replyRecords(conn net.Conn, query string) {
	records, err := r.reg.Search(query)
	if err != nil {
		fmt.Fprintln(conn, "ERR", err)
		return
	}
	res, err := json.Marshal(records)
	if err != nil {
		fmt.Fprintln(conn, "ERR internal error")
		return
	}
	fmt.Fprintln(conn, "OK", string(res))
}

func (r *Router) handleExport(conn net.Conn, kind string) {
	var f *export.File
	var err error

	switch strings.ToLower(kind) {
	case "xlsx", "excel":
		f, err = r.exporter.ExportExcel()
	case "pdf":
		f, err = r.exporter.ExportPDF(context.Background())
	case "doc", "word":
		f, err = r.exporter.ExportWord()
	default:
		fmt.Fprintln(conn, "ERR unknown export kind")
		return
	}
	if err != nil {
		fmt.Fprintln(conn, "ERR", err)
		return
	}

	path, err := r.exporter.WriteFile(f)
	if err != nil {
		fmt.Fprintln(conn, "ERR", err)
		return
	}
	fmt.Fprintln(conn, "OK", path)
}
